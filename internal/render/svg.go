package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"github.com/sumonst21/opencollective-images/internal/constants"
	"github.com/sumonst21/opencollective-images/internal/domain"
	"go.uber.org/zap"
)

// BannerRenderer turns a resolved member list and derived params into an
// SVG document. The HTTP shim depends on this interface only.
type BannerRenderer interface {
	Banner(ctx context.Context, members []domain.Member, params domain.BannerParams) ([]byte, error)
}

// SVG renders avatar-grid banners. Avatars are fetched concurrently and
// inlined as data URIs so the banner displays in contexts that block
// external image references (GitHub READMEs).
type SVG struct {
	httpClient *http.Client
	websiteURL string
	logger     *zap.Logger
}

func NewSVG(websiteURL string, logger *zap.Logger) *SVG {
	return &SVG{
		httpClient: &http.Client{
			Timeout: constants.APIConfig.AvatarTimeout,
		},
		websiteURL: websiteURL,
		logger:     logger,
	}
}

func (r *SVG) Banner(ctx context.Context, members []domain.Member, params domain.BannerParams) ([]byte, error) {
	shown := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if !params.IncludeAnonymous && m.IsAnonymous() {
			continue
		}
		shown = append(shown, m)
		if params.Limit > 0 && len(shown) == params.Limit {
			break
		}
	}

	avatars := r.fetchAvatars(ctx, shown)

	var button string
	if params.ButtonImage != "" {
		button = r.fetchImage(ctx, params.ButtonImage)
	}

	return r.layout(shown, avatars, button, params), nil
}

// fetchAvatars downloads avatar images in parallel, bounded. A failed
// fetch leaves an empty slot; the member renders as a placeholder circle.
func (r *SVG) fetchAvatars(ctx context.Context, members []domain.Member) []string {
	avatars := make([]string, len(members))

	p := pool.New().WithMaxGoroutines(constants.BannerDefaults.AvatarConcurrency)
	for i, m := range members {
		if !m.HasImage() {
			continue
		}
		p.Go(func() {
			avatars[i] = r.fetchImage(ctx, m.ImageURL())
		})
	}
	p.Wait()

	return avatars
}

// fetchImage returns the image as a data URI, or empty string on failure.
func (r *SVG) fetchImage(ctx context.Context, imageURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return ""
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("Avatar fetch failed", zap.String("url", imageURL), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Debug("Avatar fetch non-200", zap.String("url", imageURL), zap.Int("status", resp.StatusCode))
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(body))
}

func (r *SVG) layout(members []domain.Member, avatars []string, button string, params domain.BannerParams) []byte {
	cell := params.AvatarHeight + params.Margin

	perRow := len(members)
	if params.Width > 0 {
		perRow = (params.Width - params.Margin) / cell
		if perRow < 1 {
			perRow = 1
		}
	}
	if perRow == 0 {
		perRow = 1
	}

	rows := (len(members) + perRow - 1) / perRow

	width := params.Width
	if width == 0 {
		cols := len(members)
		if cols == 0 {
			cols = 1
		}
		width = cols*cell + params.Margin
	}

	height := params.Height
	if height == 0 {
		height = rows*cell + params.Margin
		if button != "" {
			height += cell
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%d" height="%d">`, width, height)
	b.WriteString("\n")

	for i, m := range members {
		x := params.Margin + (i%perRow)*cell
		y := params.Margin + (i/perRow)*cell

		if params.LinkToProfile && !m.IsAnonymous() {
			fmt.Fprintf(&b, `<a xlink:href="%s/%s" target="_blank">`, r.websiteURL, html.EscapeString(m.Slug))
		}
		if avatars[i] != "" {
			fmt.Fprintf(&b, `<image x="%d" y="%d" width="%d" height="%d" xlink:href="%s">`,
				x, y, params.AvatarHeight, params.AvatarHeight, avatars[i])
			if m.Name != "" {
				fmt.Fprintf(&b, `<title>%s</title>`, html.EscapeString(m.Name))
			}
			b.WriteString(`</image>`)
		} else {
			fmt.Fprintf(&b, `<circle cx="%d" cy="%d" r="%d" fill="#e1e4e8"/>`,
				x+params.AvatarHeight/2, y+params.AvatarHeight/2, params.AvatarHeight/2)
		}
		if params.LinkToProfile && !m.IsAnonymous() {
			b.WriteString(`</a>`)
		}
		b.WriteString("\n")
	}

	if button != "" {
		y := params.Margin + rows*cell
		fmt.Fprintf(&b, `<a xlink:href="%s/%s#support" target="_blank"><image x="%d" y="%d" height="%d" xlink:href="%s"/></a>`,
			r.websiteURL, html.EscapeString(params.CollectiveSlug), params.Margin, y, params.AvatarHeight, button)
		b.WriteString("\n")
	}

	b.WriteString(`</svg>`)
	return []byte(b.String())
}
