package ato

import (
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/commander/internal/errors"
)

// LoadFile reads and validates the air-tasking orders in a YAML file, one
// document per side. Packages without an origin are treated as manually
// created.
func LoadFile(path string) ([]*AirTaskingOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewFileNotFoundError(path)
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read ato", err)
	}
	defer func() { _ = f.Close() }()

	var orders []*AirTaskingOrder
	dec := yaml.NewDecoder(f)
	for {
		var order AirTaskingOrder
		if err := dec.Decode(&order); err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, errors.NewFileUnmarshalError(path, "YAML", err)
		}

		for _, p := range order.Packages {
			if p.Origin == "" {
				p.Origin = OriginManual
			}
		}

		if err := order.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeATOInvalid, "invalid ato "+path, err)
		}
		orders = append(orders, &order)
	}

	if len(orders) == 0 {
		return nil, errors.New(errors.ErrCodeATOInvalid, "no air-tasking order in "+path)
	}
	return orders, nil
}

// SaveFile writes orders to a YAML file, one document per side.
func SaveFile(path string, orders ...*AirTaskingOrder) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, "create directory", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "create ato file", err)
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	for _, o := range orders {
		if err := enc.Encode(o); err != nil {
			return errors.Wrap(errors.ErrCodeFileMarshal, "marshal ato", err)
		}
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "write ato", err)
	}
	return nil
}
