package downloader

import (
	"net/url"
	"strings"

	"srer/pkg/errors"
	"srer/pkg/storage"
)

// ResolveImageURL turns a scraped image reference into an absolute http(s)
// URL and the file name to store it under. Relative references are
// resolved against base. Any reference that cannot be downloaded returns an
// invalid_url error, and the caller must not attempt an HTTP request.
func ResolveImageURL(base *url.URL, href string) (*url.URL, string, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return nil, "", invalid(href, "empty image reference")
	}

	u, err := url.Parse(href)
	if err != nil {
		return nil, "", errors.New(errors.ErrorTypeInvalidURL, href, "unparseable image reference", err)
	}

	if !u.IsAbs() && u.Host == "" {
		if base == nil {
			return nil, "", invalid(href, "relative reference without base URL")
		}
		u = base.ResolveReference(u)
	} else if u.Scheme == "" {
		// protocol-relative //host/path
		if base == nil {
			return nil, "", invalid(href, "relative reference without base URL")
		}
		u.Scheme = base.Scheme
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", invalid(href, "unsupported scheme "+u.Scheme)
	}
	if u.Host == "" {
		return nil, "", invalid(href, "missing host")
	}

	name := u.Path
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if err := storage.ValidateName(name); err != nil {
		return nil, "", invalid(href, "no usable file name in path")
	}

	return u, name, nil
}

func invalid(href, message string) error {
	return errors.New(errors.ErrorTypeInvalidURL, href, message, nil)
}
