package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/shenikar/rescue_dashboard/internal/models"
)

// MaxBatchFiles - ограничение бэкенда на размер пакета
const MaxBatchFiles = 100

type uploadKind int

const (
	kindUnsupported uploadKind = iota
	kindImage
	kindDocument
)

var documentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/x-ole-storage",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// classify определяет тип файла по содержимому, а не по расширению
func classify(data []byte) uploadKind {
	if len(data) == 0 {
		return kindUnsupported
	}
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return kindImage
		}
	}
	for _, t := range documentTypes {
		if mt.Is(t) {
			return kindDocument
		}
	}
	return kindUnsupported
}

// IsImage сообщает, будет ли файл отправлен как изображение
func IsImage(file models.Upload) bool {
	return classify(file.Data) == kindImage
}

func (c *Client) doMultipart(ctx context.Context, op, path, field string, files []models.Upload, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Filename))
		h.Set("Content-Type", mimetype.Detect(f.Data).String())
		part, err := w.CreatePart(h)
		if err != nil {
			return unsupported(op, "cannot encode %s: %v", f.Filename, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return unsupported(op, "cannot encode %s: %v", f.Filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return unsupported(op, "cannot encode multipart body: %v", err)
	}
	return c.do(ctx, op, http.MethodPost, path, &buf, w.FormDataContentType(), out)
}
