package cli

import (
	"context"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/filekeeper/internal/client/client"
	"github.com/dmitrijs2005/filekeeper/internal/common"
)

func (a *App) Mkdir(ctx context.Context) error {

	name, err := GetSimpleText(a.reader, "Folder name", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	parentID, err := GetSimpleText(a.reader, "Parent id (empty for root)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	folder, err := a.api.Upload(ctx, client.UploadParams{
		Name:     name,
		Type:     common.TypeFolder,
		ParentID: parentID,
	})
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	log.Printf("Folder created: %s", folder.ID)
	return nil
}

// detectType picks the catalog entry type from the file name. Anything with
// an image/* mime type becomes an image entry.
func detectType(name string) string {
	if strings.HasPrefix(mime.TypeByExtension(filepath.Ext(name)), "image/") {
		return common.TypeImage
	}
	return common.TypeFile
}

func (a *App) Put(ctx context.Context) error {

	path, err := GetSimpleText(a.reader, "Local file path", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	parentID, err := GetSimpleText(a.reader, "Parent id (empty for root)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error reading %s: %v", path, err)
		return err
	}

	name := filepath.Base(path)

	entry, err := a.api.Upload(ctx, client.UploadParams{
		Name:     name,
		Type:     detectType(name),
		ParentID: parentID,
		Data:     data,
	})
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	log.Printf("Uploaded %s: %s", entry.Name, entry.ID)
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {

	parentID := ""
	page := 0

	if len(args) > 0 {
		parentID = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("Usage: ls [parentId] [page]")
			return err
		}
		page = n
	}

	entries, err := a.api.List(ctx, parentID, page)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	if len(entries) == 0 {
		fmt.Println("(empty)")
		return nil
	}

	for _, e := range entries {
		visibility := "private"
		if e.IsPublic {
			visibility = "public"
		}
		fmt.Printf("%s  %-6s  %-7s  %s\n", e.ID, e.Type, visibility, e.Name)
	}
	return nil
}

func (a *App) Stat(ctx context.Context, args []string) error {

	if len(args) == 0 {
		fmt.Println("Usage: stat <id>")
		return nil
	}

	entry, err := a.api.Stat(ctx, args[0])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("id:       %s\n", entry.ID)
	fmt.Printf("name:     %s\n", entry.Name)
	fmt.Printf("type:     %s\n", entry.Type)
	fmt.Printf("parent:   %s\n", entry.ParentID)
	fmt.Printf("isPublic: %v\n", entry.IsPublic)
	return nil
}

func (a *App) Get(ctx context.Context, args []string) error {

	if len(args) == 0 {
		fmt.Println("Usage: get <id>")
		return nil
	}

	entry, err := a.api.Stat(ctx, args[0])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	data, err := a.api.Data(ctx, args[0])
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	name := filepath.Base(entry.Name)
	if err := os.WriteFile(name, data, 0o660); err != nil {
		log.Printf("error writing %s: %v", name, err)
		return err
	}

	log.Printf("Saved %d bytes to %s", len(data), name)
	return nil
}

func (a *App) Status(ctx context.Context) error {

	status, err := a.api.Status(ctx)
	if err != nil {
		log.Printf("error: %s", err.Error())
		return err
	}

	fmt.Printf("redis: %v\ndb:    %v\n", status.Redis, status.DB)
	return nil
}
