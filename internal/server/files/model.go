package files

import (
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

// File is the catalog record for a folder, file or image. ParentID is empty
// for top-level records; LocalPath is the blob name and is set only for
// files and images.
type File struct {
	ID        string
	UserID    string
	Name      string
	Type      string
	ParentID  string
	IsPublic  bool
	LocalPath string
	Seq       int64
	CreatedAt time.Time
}

// IsFolder reports whether the record is a folder and therefore owns no blob.
func (f *File) IsFolder() bool {
	return f.Type == common.TypeFolder
}

// View is the external projection of a File. LocalPath is deliberately
// absent: blob names never leave the service.
type View struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentID string `json:"parentId"`
}

// View returns the external projection, with the root parent rendered as the
// "0" sentinel.
func (f *File) View() *View {
	parentID := f.ParentID
	if parentID == "" {
		parentID = common.RootParentID
	}
	return &View{
		ID:       f.ID,
		UserID:   f.UserID,
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentID: parentID,
	}
}
