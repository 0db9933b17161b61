// Package domain defines the federated login domain: supported identity
// providers, profile normalization and the authorization state codec.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/restboard/restboard/internal/errors"
)

// Provider identifies a supported external identity provider.
type Provider string

// Supported providers.
const (
	ProviderKakao  Provider = "kakao"
	ProviderGoogle Provider = "google"
	ProviderNaver  Provider = "naver"
)

// Domain-specific errors for federated login.
var (
	// ErrUnsupportedProvider indicates a federated login from an unrecognized
	// provider identifier.
	ErrUnsupportedProvider = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported provider")

	// ErrMalformedProfile indicates a provider user payload missing an
	// expected field.
	ErrMalformedProfile = apperrors.Wrap(apperrors.ErrInvalidInput, "malformed provider profile")
)

// ParseProvider maps a provider identifier to a Provider, failing fast on
// anything unrecognized.
func ParseProvider(s string) (Provider, error) {
	switch Provider(strings.ToLower(s)) {
	case ProviderKakao:
		return ProviderKakao, nil
	case ProviderGoogle:
		return ProviderGoogle, nil
	case ProviderNaver:
		return ProviderNaver, nil
	default:
		return "", apperrors.Wrap(ErrUnsupportedProvider, s)
	}
}

// Profile is the provider-independent identity shape extracted from a
// provider's user payload.
type Profile struct {
	ExternalID string
	Nickname   string
	AvatarURL  string
}

// LocalUsername derives the local account username for this profile:
// "<PROVIDER>__<externalId>". The prefix guarantees no collision with native
// password-based usernames and makes the origin provider recoverable from the
// username alone.
func (p *Profile) LocalUsername(provider Provider) string {
	return fmt.Sprintf("%s__%s", strings.ToUpper(string(provider)), p.ExternalID)
}

// Normalize extracts the provider-independent profile out of a raw user
// payload. Each provider nests the fields differently:
//
//   - kakao: numeric top-level "id", nickname/profile_image under "properties"
//   - google: flat "sub", "name" and "picture"
//   - naver: everything under a "response" sub-object
func (p Provider) Normalize(attrs map[string]any) (*Profile, error) {
	switch p {
	case ProviderKakao:
		props, err := nestedObject(attrs, "properties")
		if err != nil {
			return nil, err
		}
		id, err := stringAttr(attrs, "id")
		if err != nil {
			return nil, err
		}
		nickname, err := stringAttr(props, "nickname")
		if err != nil {
			return nil, err
		}
		avatarURL, err := stringAttr(props, "profile_image")
		if err != nil {
			return nil, err
		}
		return &Profile{ExternalID: id, Nickname: nickname, AvatarURL: avatarURL}, nil

	case ProviderGoogle:
		id, err := stringAttr(attrs, "sub")
		if err != nil {
			return nil, err
		}
		nickname, err := stringAttr(attrs, "name")
		if err != nil {
			return nil, err
		}
		avatarURL, err := stringAttr(attrs, "picture")
		if err != nil {
			return nil, err
		}
		return &Profile{ExternalID: id, Nickname: nickname, AvatarURL: avatarURL}, nil

	case ProviderNaver:
		resp, err := nestedObject(attrs, "response")
		if err != nil {
			return nil, err
		}
		id, err := stringAttr(resp, "id")
		if err != nil {
			return nil, err
		}
		nickname, err := stringAttr(resp, "nickname")
		if err != nil {
			return nil, err
		}
		avatarURL, err := stringAttr(resp, "profile_image")
		if err != nil {
			return nil, err
		}
		return &Profile{ExternalID: id, Nickname: nickname, AvatarURL: avatarURL}, nil

	default:
		return nil, apperrors.Wrap(ErrUnsupportedProvider, string(p))
	}
}

// nestedObject reads a sub-object attribute out of a raw payload.
func nestedObject(attrs map[string]any, key string) (map[string]any, error) {
	obj, ok := attrs[key].(map[string]any)
	if !ok {
		return nil, apperrors.Wrap(ErrMalformedProfile, "missing object attribute "+key)
	}
	return obj, nil
}

// stringAttr reads a scalar attribute as a string. Numeric ids (kakao) are
// formatted without a fractional part.
func stringAttr(attrs map[string]any, key string) (string, error) {
	switch v := attrs[key].(type) {
	case string:
		if v == "" {
			return "", apperrors.Wrap(ErrMalformedProfile, "blank attribute "+key)
		}
		return v, nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", apperrors.Wrap(ErrMalformedProfile, "missing attribute "+key)
	}
}
