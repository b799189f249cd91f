package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/goccy/tablenum/types"
)

type Source func(*Server) error

func YAMLSource(path string) Source {
	return func(s *Server) error {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		validate := newValidator()
		dec := yaml.NewDecoder(
			bytes.NewBuffer(content),
			yaml.Validator(validate),
			yaml.Strict(),
		)
		var v struct {
			Tables []*types.Table `yaml:"tables" validate:"required,dive"`
		}
		if err := dec.Decode(&v); err != nil {
			return errors.New(yaml.FormatError(err, false, true))
		}
		return s.addTables(context.Background(), v.Tables)
	}
}

func JSONSource(path string) Source {
	return func(s *Server) error {
		jsonFile, err := os.Open(path)
		if err != nil {
			return err
		}

		content, err := io.ReadAll(jsonFile)
		if err != nil {
			return err
		}

		err = jsonFile.Close()
		if err != nil {
			return err
		}

		var v struct {
			Tables []*types.Table `json:"tables" validate:"required,dive"`
		}
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&v); err != nil {
			return err
		}
		if err := newValidator().Struct(&v); err != nil {
			return err
		}
		return s.addTables(context.Background(), v.Tables)
	}
}

func StructSource(tables ...*types.Table) Source {
	return func(s *Server) error {
		return s.addTables(context.Background(), tables)
	}
}

func newValidator() *validator.Validate {
	validate := validator.New()
	types.RegisterTypeValidation(validate)
	return validate
}
