package md2slides

import (
	"encoding/base64"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"
)

// defaultQRSize is the image size in pixels when the directive gives none.
const defaultQRSize = 200

// qrDirective matches <p>.qr: size|url</p>. 1 = size, 2 = url.
var qrDirective = regexp.MustCompile(`(?s)<p>\.qr:\s?(\d*)\|(.*?)</p>`)

// QRMacro replaces <p>.qr: size|url</p> with a locally generated QR code image.
type QRMacro struct {
	logger *slog.Logger
}

// Name implements Macro.
func (m *QRMacro) Name() string { return "qr" }

// Process implements Macro.
func (m *QRMacro) Process(content string, src SourceRef, _ MacroContext) (string, []string) {
	content = qrDirective.ReplaceAllStringFunc(content, func(match string) string {
		sub := qrDirective.FindStringSubmatch(match)
		size, err := strconv.Atoi(sub[1])
		if err != nil || size <= 0 {
			size = defaultQRSize
		}
		target := html.UnescapeString(sub[2])

		png, err := qrcode.Encode(target, qrcode.Medium, size)
		if err != nil {
			m.logger.Warn("QR code not generated", "source", src.RelPath, "error", err)
			return match
		}
		return fmt.Sprintf(`<p class="qr"><img src="data:image/png;base64,%s" alt="%s" width="%d" height="%d" /></p>`,
			base64.StdEncoding.EncodeToString(png), html.EscapeString(target), size, size)
	})
	return content, nil
}
