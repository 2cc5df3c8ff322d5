package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUpdateProfileRequest(t *testing.T) {
	req, err := DecodeUpdateProfileRequest(strings.NewReader(`{
		"name": "  Ada  ",
		"website": null,
		"bio": 42,
		"email": "ignored@example.com",
		"Role": "ignored because keys are case-sensitive"
	}`))
	require.NoError(t, err)

	name := req.Field(FieldName)
	assert.True(t, name.Present)
	assert.Equal(t, "  Ada  ", name.Value)

	website := req.Field(FieldWebsite)
	assert.True(t, website.Present)
	assert.True(t, website.Null)

	bio := req.Field(FieldBio)
	assert.True(t, bio.Present)
	assert.True(t, bio.Invalid)

	assert.False(t, req.Field(FieldRole).Present)
	assert.False(t, req.Field(FieldLocation).Present)
}

func TestDecodeUpdateProfileRequestMalformed(t *testing.T) {
	bodies := []string{
		``,
		`{"name": `,
		`not json`,
		`null`,
		`{"name":"a"} {"name":"b"}`,
		`[] []`,
	}

	for _, body := range bodies {
		_, err := DecodeUpdateProfileRequest(strings.NewReader(body))
		assert.ErrorIs(t, err, ErrMalformedBody, "body %q", body)
	}
}

func TestDecodeUpdateProfileRequestEmptyObject(t *testing.T) {
	req, err := DecodeUpdateProfileRequest(strings.NewReader(`{}`))
	require.NoError(t, err)

	for _, field := range UpdatableProfileFields {
		assert.False(t, req.Field(field).Present, string(field))
	}
}

func TestDecodeUpdateProfileRequestNonObject(t *testing.T) {
	bodies := []string{`[]`, `["name"]`, `5`, `"x"`, `true`, ` [{"name": "Ada"}] `}

	for _, body := range bodies {
		req, err := DecodeUpdateProfileRequest(strings.NewReader(body))
		require.NoError(t, err, "body %q", body)
		for _, field := range UpdatableProfileFields {
			assert.False(t, req.Field(field).Present, "body %q field %s", body, field)
		}
	}
}
