package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// ErrMalformedBody is returned when a request body is not parseable JSON, or is null
var ErrMalformedBody = errors.New("request body is not valid JSON")

// ProfileField names a client-updatable column of the user record
type ProfileField string

const (
	FieldName     ProfileField = "name"
	FieldRole     ProfileField = "role"
	FieldLocation ProfileField = "location"
	FieldWebsite  ProfileField = "website"
	FieldBio      ProfileField = "bio"
)

// UpdatableProfileFields is the allow-list for PATCH /api/profile, in validation order.
// Keys outside it are ignored.
var UpdatableProfileFields = []ProfileField{FieldName, FieldRole, FieldLocation, FieldWebsite, FieldBio}

// OptionalString is one field of a partial update body
type OptionalString struct {
	Present bool // key appeared in the body
	Null    bool // value was JSON null
	Invalid bool // value was neither a string nor null
	Value   string
}

// UpdateProfileRequest is a decoded PATCH /api/profile body
type UpdateProfileRequest struct {
	fields map[ProfileField]OptionalString
}

// NewUpdateProfileRequest builds a request from plain values, mostly for tests and seeding
func NewUpdateProfileRequest(values map[ProfileField]string) *UpdateProfileRequest {
	req := &UpdateProfileRequest{fields: make(map[ProfileField]OptionalString, len(values))}
	for field, value := range values {
		req.fields[field] = OptionalString{Present: true, Value: value}
	}
	return req
}

// Field returns the named field; Present is false when the body did not contain it
func (r *UpdateProfileRequest) Field(f ProfileField) OptionalString {
	if r == nil {
		return OptionalString{}
	}
	return r.fields[f]
}

// DecodeUpdateProfileRequest reads a JSON body and keeps only allow-listed keys.
// Key matching is exact (case-sensitive). Any parseable value other than an object
// or null (an array, number or string) decodes to a request with no fields.
func DecodeUpdateProfileRequest(body io.Reader) (*UpdateProfileRequest, error) {
	dec := json.NewDecoder(body)
	var value json.RawMessage
	if err := dec.Decode(&value); err != nil {
		return nil, errors.Join(ErrMalformedBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Join(ErrMalformedBody, errors.New("unexpected data after JSON value"))
	}

	req := &UpdateProfileRequest{fields: make(map[ProfileField]OptionalString)}
	switch bytes.TrimSpace(value)[0] {
	case 'n':
		return nil, ErrMalformedBody
	case '{':
	default:
		return req, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(value, &raw); err != nil {
		return nil, errors.Join(ErrMalformedBody, err)
	}
	for _, field := range UpdatableProfileFields {
		fieldValue, ok := raw[string(field)]
		if !ok {
			continue
		}
		req.fields[field] = decodeOptionalString(fieldValue)
	}
	return req, nil
}

func decodeOptionalString(value json.RawMessage) OptionalString {
	out := OptionalString{Present: true}
	trimmed := bytes.TrimSpace(value)
	if bytes.Equal(trimmed, []byte("null")) {
		out.Null = true
		return out
	}
	if err := json.Unmarshal(trimmed, &out.Value); err != nil {
		out.Invalid = true
	}
	return out
}
