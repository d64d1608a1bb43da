package common

// AuthTokenHeaderName is the HTTP header used to carry the session token on
// authenticated requests.
const AuthTokenHeaderName = "X-Token"

// RootParentID is the sentinel parent id exposed externally for top-level
// records. Internally a root record has an empty ParentID.
const RootParentID = "0"

// FileType enumerates the accepted record types.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// ValidFileType reports whether t is one of the accepted record types.
func ValidFileType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}
