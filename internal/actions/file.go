package actions

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/playwright-community/playwright-go"

	"github.com/probelab/uiharness/internal/errs"
)

// FileActions covers uploads and downloads.
type FileActions struct {
	a *Actions
}

// Upload sets a local file on a file input. The file is read eagerly so a
// missing path fails before touching the page.
func (f *FileActions) Upload(input playwright.Locator, path, name string) error {
	done := f.a.step("upload: " + filepath.Base(path))
	payload, err := os.ReadFile(path)
	if err != nil {
		return done(errs.Wrap(errs.NotFound, "read upload file", err))
	}
	err = input.SetInputFiles([]playwright.InputFile{{
		Name:     filepath.Base(path),
		MimeType: mimeFor(path),
		Buffer:   payload,
	}})
	if err != nil {
		return done(errs.Automation("set file on "+name, err))
	}
	return done(nil)
}

// UploadMany sets several local files on a multi-file input.
func (f *FileActions) UploadMany(input playwright.Locator, paths []string, name string) error {
	done := f.a.step(fmt.Sprintf("upload %d files to %s", len(paths), name))
	files := make([]playwright.InputFile, 0, len(paths))
	for _, path := range paths {
		payload, err := os.ReadFile(path)
		if err != nil {
			return done(errs.Wrap(errs.NotFound, "read upload file", err))
		}
		files = append(files, playwright.InputFile{
			Name:     filepath.Base(path),
			MimeType: mimeFor(path),
			Buffer:   payload,
		})
	}
	if err := input.SetInputFiles(files); err != nil {
		return done(errs.Automation("set files on "+name, err))
	}
	return done(nil)
}

// ClearUpload removes any file set on a file input.
func (f *FileActions) ClearUpload(input playwright.Locator, name string) error {
	done := f.a.step("clear upload: " + name)
	if err := input.SetInputFiles([]playwright.InputFile{}); err != nil {
		return done(errs.Automation("clear file on "+name, err))
	}
	value, err := input.InputValue()
	if err != nil {
		return done(errs.Automation("verify cleared upload "+name, err))
	}
	if value != "" {
		return done(errs.New(errs.AssertionFailed,
			fmt.Sprintf("file input %s still holds %q", name, value)))
	}
	return done(nil)
}

// Download runs trigger, waits for the resulting download and saves it under
// the run's download directory. Returns the saved path.
func (f *FileActions) Download(trigger func() error, destDir string) (string, error) {
	done := f.a.step("download file")
	download, err := f.a.page.ExpectDownload(func() error {
		return trigger()
	})
	if err != nil {
		return "", done(errs.Automation("wait for download", err))
	}
	dest := filepath.Join(destDir, download.SuggestedFilename())
	if err := download.SaveAs(dest); err != nil {
		return "", done(errs.Automation("save download", err))
	}
	info, err := os.Stat(dest)
	if err != nil {
		return "", done(errs.Wrap(errs.Internal, "stat downloaded file", err))
	}
	if info.Size() == 0 {
		return dest, done(errs.New(errs.AssertionFailed, "downloaded file is empty: "+dest))
	}
	f.a.log.Info("download saved", "path", dest, "bytes", info.Size())
	return dest, done(nil)
}

func mimeFor(path string) string {
	switch filepath.Ext(path) {
	case ".txt":
		return "text/plain"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
