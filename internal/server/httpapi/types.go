package httpapi

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type errorResponse struct {
	Error string `json:"error"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type connectResponse struct {
	Token string `json:"token"`
}

// flexibleID accepts both JSON string ids and the numeric root sentinel 0,
// which clients of the reference API send interchangeably.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case string:
		*f = flexibleID(value)
		return nil
	case float64:
		*f = flexibleID(strconv.FormatInt(int64(value), 10))
		return nil
	case nil:
		*f = ""
		return nil
	default:
		return fmt.Errorf("invalid id value")
	}
}

type uploadRequest struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	ParentID flexibleID `json:"parentId"`
	IsPublic bool       `json:"isPublic"`
	Data     string     `json:"data"`
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}
