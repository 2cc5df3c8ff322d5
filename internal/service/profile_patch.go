package service

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/types"
)

// specialSchemes follow WHATWG special-URL parsing: backslashes act as slashes,
// any run of slashes after the colon is skipped and a non-empty host is required.
// file is special too but may have an empty host, so it takes the generic path.
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
	"ws":    true,
	"wss":   true,
}

// forbiddenHostChars may not appear in a host
const forbiddenHostChars = " #/:<>?@[\\]^|"

// BuildProfilePatch validates req and returns the column values to write plus the
// names of the fields they came from, in allow-list order. It never touches storage.
func BuildProfilePatch(req *types.UpdateProfileRequest) (map[string]interface{}, []string, error) {
	patch := make(map[string]interface{})
	var fields []string

	for _, field := range types.UpdatableProfileFields {
		value := req.Field(field)
		if !value.Present {
			continue
		}

		if field == types.FieldName {
			name := strings.TrimSpace(value.Value)
			if value.Null || value.Invalid || name == "" {
				return nil, nil, apperror.NewInvalidInput(apperror.CodeInvalidName, "Name cannot be empty", nil)
			}
			patch[string(field)] = name
			fields = append(fields, string(field))
			continue
		}

		if value.Invalid {
			return nil, nil, apperror.NewInvalidInput(apperror.CodeInvalidFieldType,
				"Field '"+string(field)+"' must be a string or null", nil)
		}

		trimmed := strings.TrimSpace(value.Value)
		if value.Null || trimmed == "" {
			patch[string(field)] = nil
			fields = append(fields, string(field))
			continue
		}

		if field == types.FieldWebsite && !IsAbsoluteURL(trimmed) {
			return nil, nil, apperror.NewInvalidInput(apperror.CodeInvalidURL, "Invalid website URL format", nil)
		}
		patch[string(field)] = trimmed
		fields = append(fields, string(field))
	}

	if len(patch) == 0 {
		return nil, nil, apperror.NewInvalidInput(apperror.CodeNoFieldsProvided, "No fields provided to update", nil)
	}
	return patch, fields, nil
}

// IsAbsoluteURL reports whether raw parses as an absolute URL the way a browser's
// URL constructor would. Tabs and newlines are dropped, spaces in the path or query are
// tolerated, and the host and port are checked strictly.
func IsAbsoluteURL(raw string) bool {
	raw = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	scheme, rest, ok := splitScheme(raw)
	if !ok {
		return false
	}

	if !specialSchemes[scheme] {
		// Opaque URLs (mailto:, urn:) need nothing after the colon
		if !strings.HasPrefix(rest, "//") {
			return true
		}
		return validAuthority(authority(rest[2:]), false)
	}

	rest = strings.TrimLeft(strings.ReplaceAll(rest, `\`, "/"), "/")
	return validAuthority(authority(rest), true)
}

// splitScheme returns the lower-cased scheme and everything after its colon
func splitScheme(raw string) (string, string, bool) {
	i := strings.IndexByte(raw, ':')
	if i <= 0 {
		return "", "", false
	}
	scheme := raw[:i]
	for j := 0; j < len(scheme); j++ {
		c := scheme[j]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case j > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return "", "", false
		}
	}
	return strings.ToLower(scheme), raw[i+1:], true
}

// authority cuts rest at the first path, query or fragment delimiter
func authority(rest string) string {
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		return rest[:i]
	}
	return rest
}

func validAuthority(auth string, requireHost bool) bool {
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		auth = auth[i+1:]
	}

	host, port := auth, ""
	if strings.HasPrefix(auth, "[") {
		end := strings.IndexByte(auth, ']')
		if end < 0 {
			return false
		}
		addr, err := netip.ParseAddr(auth[1:end])
		if err != nil || !addr.Is6() {
			return false
		}
		host, port = auth[:end+1], auth[end+1:]
		if port != "" && port[0] != ':' {
			return false
		}
		port = strings.TrimPrefix(port, ":")
	} else if i := strings.IndexByte(auth, ':'); i >= 0 {
		host, port = auth[:i], auth[i+1:]
	}

	if host == "" {
		return !requireHost && port == ""
	}
	if !strings.HasPrefix(host, "[") {
		if strings.ContainsAny(host, forbiddenHostChars) {
			return false
		}
		for _, r := range host {
			if r < 0x20 || r == 0x7f {
				return false
			}
		}
	}
	return validPort(port)
}

// validPort accepts an empty port or decimal digits no larger than 65535
func validPort(port string) bool {
	if port == "" {
		return true
	}
	_, err := strconv.ParseUint(port, 10, 16)
	return err == nil
}
