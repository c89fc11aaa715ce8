package apiv1

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openAPIDocPath = "../../../public/docs/v1/openapi.yml"

// The document served to the swagger UI must stay valid and keep
// describing every route RegisterHandlers mounts.
func TestOpenAPIDocumentIsValid(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openAPIDocPath)
	require.NoError(t, err)

	err = doc.Validate(loader.Context)
	require.NoError(t, err)

	assert.Equal(t, "FranHub API", doc.Info.Title)
}

func TestOpenAPIDocumentCoversRoutes(t *testing.T) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(openAPIDocPath)
	require.NoError(t, err)

	for _, path := range []string{
		"/ping",
		"/listings",
		"/listings/{id}",
		"/banners/{position}",
		"/banners/{position}/impression",
		"/banners/{position}/click",
	} {
		assert.NotNil(t, doc.Paths.Find(path), "missing path %s", path)
	}
}
