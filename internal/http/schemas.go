package http

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/xeipuuv/gojsonschema"

	"creator-finance/internal/apperr"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

type schemas struct {
	register          *gojsonschema.Schema
	login             *gojsonschema.Schema
	transactionCreate *gojsonschema.Schema
	transactionUpdate *gojsonschema.Schema
	platformReport    *gojsonschema.Schema
}

func loadSchemas() (*schemas, error) {
	load := func(name string) (*gojsonschema.Schema, error) {
		raw, err := schemaFS.ReadFile("schemas/" + name + ".schema.json")
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
		return schema, nil
	}

	var (
		s   schemas
		err error
	)
	for name, dst := range map[string]**gojsonschema.Schema{
		"register":           &s.register,
		"login":              &s.login,
		"transaction_create": &s.transactionCreate,
		"transaction_update": &s.transactionUpdate,
		"platform_report":    &s.platformReport,
	} {
		if *dst, err = load(name); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// invalidBody lists every schema violation of a request body.
type invalidBody struct {
	details []string
}

func (e *invalidBody) Error() string {
	return "invalid request body: " + strings.Join(e.details, "; ")
}

func (e *invalidBody) Unwrap() error { return apperr.ErrValidation }

// bindJSON validates the request body against schema and decodes it into dst.
func bindJSON(c *gin.Context, schema *gojsonschema.Schema, dst any) error {
	raw, err := c.GetRawData()
	if err != nil {
		return apperr.Validation("could not read request body")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return apperr.Validation("request body is required")
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return apperr.Validation("request body must be a JSON object")
	}
	if !res.Valid() {
		details := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			details = append(details, e.String())
		}
		return &invalidBody{details: details}
	}

	if err := binding.JSON.BindBody(raw, dst); err != nil {
		return apperr.Validation("malformed request body")
	}
	return nil
}
