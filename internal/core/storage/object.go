package storage

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

var ErrForeignURL = errors.New("storage: url does not point at this store")

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectName <prefix>/<unix-ms>_<文件名>
func ObjectName(prefix, filename string, now time.Time) string {
	name := unsafeName.ReplaceAllString(path.Base(strings.ReplaceAll(filename, "\\", "/")), "_")
	name = strings.Trim(name, "_")
	if name == "" || name == "." {
		name = "file"
	}
	return fmt.Sprintf("%s/%d_%s", strings.Trim(prefix, "/"), now.UnixMilli(), name)
}

func UserPrefix(userID uint) string       { return fmt.Sprintf("user_%d", userID) }
func CompanyPrefix(companyID uint) string { return fmt.Sprintf("company_%d", companyID) }

// URLBuilder 公网地址：<base>/<bucket>/<object>
type URLBuilder struct {
	Base string
}

func NewURLBuilder(publicURL, endpoint string, secure bool) URLBuilder {
	if publicURL != "" {
		return URLBuilder{Base: strings.TrimRight(publicURL, "/")}
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return URLBuilder{Base: scheme + "://" + endpoint}
}

func (b URLBuilder) URL(bucket, object string) string {
	return b.Base + "/" + bucket + "/" + object
}

// Parse 反解 bucket/object，用于按 url 删除
func (b URLBuilder) Parse(raw string) (bucket, object string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	base, err := url.Parse(b.Base)
	if err != nil {
		return "", "", err
	}
	if u.Host != "" && !strings.EqualFold(u.Host, base.Host) {
		return "", "", ErrForeignURL
	}
	p := strings.TrimPrefix(u.Path, strings.TrimRight(base.Path, "/"))
	p = strings.TrimPrefix(p, "/")
	bucket, object, ok := strings.Cut(p, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("storage: cannot parse object from %q", raw)
	}
	return bucket, object, nil
}
