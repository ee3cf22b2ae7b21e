package router

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"go-gin-jobboard/internal/service"
	httpez "go-gin-jobboard/internal/transport/http/ez"
)

var (
	imageTypes    = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	documentTypes = []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	}
)

const (
	imageHint    = "Only JPEG, PNG, GIF and WebP images are allowed."
	documentHint = "Only PDF, DOC and DOCX files are allowed."
)

// uploadField multipart 里允许的一个文件字段
type uploadField struct {
	Name    string
	Max     int
	Allowed []string
	Hint    string
}

var (
	logoField   = uploadField{Name: "logo_company_url", Max: 1, Allowed: imageTypes, Hint: imageHint}
	avatarField = uploadField{Name: "avatar", Max: 1, Allowed: imageTypes, Hint: imageHint}
	cvField     = uploadField{Name: "cv", Max: 5, Allowed: documentTypes, Hint: documentHint}
)

// Uploads 上传限制
type Uploads struct {
	MaxFileBytes int64
	MaxFiles     int
}

func (u Uploads) tooLarge() error {
	return httpez.BadRequest(fmt.Sprintf("File too large. Maximum size allowed is %dMB.", u.MaxFileBytes>>20))
}

func (u Uploads) tooMany() error {
	return httpez.BadRequest(fmt.Sprintf("Too many files. Maximum %d files allowed.", u.MaxFiles))
}

// read 读取并校验 multipart 文件；非 multipart 请求返回空
func (u Uploads) read(c *gin.Context, fields ...uploadField) (map[string][]service.File, error) {
	out := map[string][]service.File{}
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return out, nil
	}
	form := c.Request.MultipartForm
	if form == nil {
		var err error
		if form, err = c.MultipartForm(); err != nil {
			return nil, err
		}
	}

	allowed := make(map[string]uploadField, len(fields))
	for _, f := range fields {
		allowed[f.Name] = f
	}
	total := 0
	for name, fhs := range form.File {
		if _, ok := allowed[name]; !ok && len(fhs) > 0 {
			return nil, httpez.BadRequest("Unexpected field: " + name)
		}
		total += len(fhs)
	}
	if total > u.MaxFiles {
		return nil, u.tooMany()
	}

	for _, f := range fields {
		fhs := form.File[f.Name]
		if len(fhs) > f.Max {
			return nil, u.tooMany()
		}
		for _, fh := range fhs {
			file, err := u.readOne(fh, f)
			if err != nil {
				return nil, err
			}
			out[f.Name] = append(out[f.Name], file)
		}
	}
	return out, nil
}

func (u Uploads) readOne(fh *multipart.FileHeader, f uploadField) (service.File, error) {
	if fh.Size > u.MaxFileBytes {
		return service.File{}, u.tooLarge()
	}
	src, err := fh.Open()
	if err != nil {
		return service.File{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, u.MaxFileBytes+1))
	if err != nil {
		return service.File{}, err
	}
	if int64(len(data)) > u.MaxFileBytes {
		return service.File{}, u.tooLarge()
	}

	// 按内容识别类型，不信任客户端的 Content-Type
	mt := mimetype.Detect(data)
	ct := ""
	for _, a := range f.Allowed {
		if mt.Is(a) {
			ct = a
			break
		}
	}
	if ct == "" {
		return service.File{}, httpez.BadRequest(fmt.Sprintf("Invalid file type for %s. %s", f.Name, f.Hint))
	}
	return service.File{Name: fh.Filename, ContentType: ct, Data: data}, nil
}

// single 取某字段的唯一文件
func single(files map[string][]service.File, name string) *service.File {
	if fs := files[name]; len(fs) > 0 {
		return &fs[0]
	}
	return nil
}
