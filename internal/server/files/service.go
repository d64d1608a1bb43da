package files

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/blob"
)

// PageSize is the fixed window for paginated listings.
const PageSize = 20

// Service orchestrates the catalog and the blob store. Callers are expected
// to have resolved the user id through auth.Service first.
type Service struct {
	repo  Repository
	blobs blob.Store
}

func NewService(repo Repository, blobs blob.Store) *Service {
	return &Service{
		repo:  repo,
		blobs: blobs,
	}
}

// UploadParams carries a new record. ParentID accepts both the external "0"
// sentinel and an empty string for root. Data is the base64 payload,
// required for files and images.
type UploadParams struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}

// Upload validates the request in a fixed order, writes the blob for
// non-folder types and then creates the catalog record. All validation
// happens before any write, so a rejected upload leaves no state behind.
//
// The parent check and the record insert are two separate store operations;
// a parent removed in between is an accepted race, there is no compensating
// lock here.
func (s *Service) Upload(ctx context.Context, userID string, p UploadParams) (*File, error) {

	if p.Name == "" {
		return nil, common.ErrMissingName
	}
	if !common.ValidFileType(p.Type) {
		return nil, common.ErrMissingType
	}
	if p.Type != common.TypeFolder && p.Data == "" {
		return nil, common.ErrMissingData
	}

	parentID := p.ParentID
	if parentID == common.RootParentID {
		parentID = ""
	}

	if parentID != "" {
		parent, err := s.repo.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, common.ErrParentNotFound
			}
			return nil, fmt.Errorf("parent lookup: %w", err)
		}
		if !parent.IsFolder() {
			return nil, common.ErrParentNotFolder
		}
	}

	file := &File{
		UserID:   userID,
		Name:     p.Name,
		Type:     p.Type,
		ParentID: parentID,
		IsPublic: p.IsPublic,
	}

	if p.Type != common.TypeFolder {
		data, err := base64.StdEncoding.DecodeString(p.Data)
		if err != nil {
			return nil, common.ErrInvalidData
		}

		// the blob is written first so the record never references
		// content that does not exist
		name, err := s.blobs.Save(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("blob save: %w", err)
		}
		file.LocalPath = name
	}

	file, err := s.repo.Create(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("error creating file record: %w", err)
	}

	return file, nil
}

// Get returns a record visible to userID: its own records and public ones.
func (s *Service) Get(ctx context.Context, userID, id string) (*File, error) {

	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("file lookup: %w", err)
	}

	if !file.IsPublic && file.UserID != userID {
		return nil, common.ErrorForbidden
	}

	return file, nil
}

// List returns page p of the caller's records under parentID, in creation
// order. The filter is owner-scoped, so an unknown or foreign parent simply
// yields an empty page; parent existence is deliberately not checked.
func (s *Service) List(ctx context.Context, userID, parentID string, page int) ([]*File, error) {

	if parentID == common.RootParentID {
		parentID = ""
	}
	if page < 0 {
		page = 0
	}

	result, err := s.repo.ListByParent(ctx, userID, parentID, page*PageSize, PageSize)
	if err != nil {
		return nil, fmt.Errorf("file listing: %w", err)
	}

	return result, nil
}

// Data returns the record visible to userID together with its blob content.
func (s *Service) Data(ctx context.Context, userID, id string) (*File, []byte, error) {

	file, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	if file.IsFolder() {
		return nil, nil, common.ErrIsFolder
	}

	data, err := s.blobs.Load(ctx, file.LocalPath)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("blob load: %w", err)
	}

	return file, data, nil
}

// Count returns the total number of catalog records.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
