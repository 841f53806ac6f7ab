package inventory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/resource"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/pkg/errs"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// document is the on-disk layout shared by the TOML and YAML formats:
//
//	[[resources]]
//	id = 1
//	type = "mcu"
//	model = "atmega2560"
//	path = "/dev/ttyUSB0"
type document struct {
	Resources []resource.InventoryEntry `toml:"resources" yaml:"resources" validate:"dive"`
}

// FileSource reads the inventory from a .toml, .yaml or .yml file.
type FileSource struct {
	path     string
	validate *validator.Validate
}

func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:     path,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *FileSource) Path() string {
	return s.path
}

func (s *FileSource) Load(ctx context.Context) ([]resource.InventoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unreadable(s.path, err)
	}

	var doc document
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
			return nil, unreadable(s.path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		// An empty YAML file is an empty inventory.
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, unreadable(s.path, err)
		}
	default:
		return nil, unreadable(s.path, fmt.Errorf("unsupported inventory format %q", ext))
	}

	if err := s.validate.Struct(doc); err != nil {
		return nil, invalidEntry(doc, err)
	}

	return doc.Resources, nil
}

func unreadable(path string, cause error) error {
	return errs.Newf(errs.KindConfigUnreadable, "Inventory %s could not be read: %v", path, cause).
		With("path", path)
}

func invalidEntry(doc document, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errs.Newf(errs.KindInvalidInventoryEntry, "Inventory is invalid: %v", err)
	}

	first := verrs[0]
	e := errs.Newf(errs.KindInvalidInventoryEntry,
		"Inventory field %s failed the %q rule", first.Namespace(), first.Tag()).
		With("field", first.Field())
	if idx := entryIndex(first.Namespace()); idx >= 0 && idx < len(doc.Resources) {
		e = e.With("id", doc.Resources[idx].ID)
	}
	return e
}

// entryIndex extracts N from a namespace such as "document.Resources[N].Path".
func entryIndex(namespace string) int {
	open := strings.IndexByte(namespace, '[')
	end := strings.IndexByte(namespace, ']')
	if open < 0 || end <= open+1 {
		return -1
	}
	n, err := strconv.Atoi(namespace[open+1 : end])
	if err != nil {
		return -1
	}
	return n
}
