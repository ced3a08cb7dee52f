package stagepage

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/eringen/stagepage/analytics"
	"github.com/eringen/stagepage/ui"
	"github.com/eringen/stagepage/views"
)

// eventRequest is the body of POST /ui/events/.
type eventRequest struct {
	View  string `json:"view"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// imagePatch tells the page script to swap an image source. Retry is false
// once the slot has used its fallback, so the script stops reporting it.
type imagePatch struct {
	Slot  ui.Slot `json:"slot"`
	Src   string  `json:"src"`
	Retry bool    `json:"retry"`
}

// eventResponse is the JSON form of a ui.Update.
type eventResponse struct {
	Parts  map[ui.Part]string `json:"parts,omitempty"`
	Images []imagePatch       `json:"images,omitempty"`
	Scroll []ui.ScrollCommand `json:"scroll,omitempty"`
}

func (a *App) page(c echo.Context, snap ui.Snapshot) views.Page {
	return views.Page{
		Meta:      views.NewPageMeta(a.Config.URL, a.Content),
		Content:   a.Content,
		Theme:     a.Content.ThemeOf(),
		View:      snap,
		CSRFToken: CsrfToken(c),
		JSONLD:    views.MusicGroupJsonLD(a.Config.URL, a.Content),
		Year:      time.Now().Year(),
	}
}

// handleHome mounts a view for the visitor and renders the page. Crawlers
// get the same markup without a view; their page accepts no events.
func (a *App) handleHome(c echo.Context) error {
	if !a.pageLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
	}
	if analytics.IsBot(c.Request().UserAgent()) {
		return Render(c, views.Site(a.page(c, a.Views.Preview())))
	}

	v := a.Views.Mount()
	evicted, err := bindView(c, v.ID())
	if err != nil {
		a.Views.Unmount(v.ID())
		return err
	}
	for _, id := range evicted {
		a.Views.Unmount(id)
	}
	return Render(c, views.Site(a.page(c, v.Snapshot())))
}

func (a *App) handleEvent(c echo.Context) error {
	if !a.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many events")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed event")
	}

	v, err := a.viewFor(c, req.View)
	if err != nil {
		return echo.NewHTTPError(http.StatusGone, "view expired")
	}

	upd, err := v.HandleEvent(req.Name, req.Value)
	switch {
	case errors.Is(err, ui.ErrUnknownEvent), errors.Is(err, ui.ErrBadValue):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ui.ErrNotMounted):
		return echo.NewHTTPError(http.StatusGone, "view expired")
	case err != nil:
		return err
	}

	if req.Name == ui.EventImageError {
		for _, ref := range upd.Images {
			a.recordFailure(c, ref)
		}
	}

	resp := eventResponse{Scroll: upd.Scroll}
	for _, ref := range upd.Images {
		resp.Images = append(resp.Images, imagePatch{Slot: ref.Slot, Src: ref.URL, Retry: ref.CanFallBack()})
	}
	if len(upd.Parts) > 0 {
		resp.Parts, err = views.RenderParts(c.Request().Context(), a.page(c, v.Snapshot()), upd.Parts...)
		if err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// viewFor looks up a mounted view that belongs to the requesting visitor.
func (a *App) viewFor(c echo.Context, id string) (*ui.View, error) {
	if id == "" || !ownsView(c, id) {
		return nil, ErrViewNotFound
	}
	return a.Views.Get(id)
}

// recordFailure stores an asset load failure for the operator. Reports from
// bots are only logged. Store errors are logged and otherwise ignored.
func (a *App) recordFailure(c echo.Context, ref ui.ImageRef) {
	client := analytics.Classify(c.Request().UserAgent())
	log.Warn().
		Str("slot", string(ref.Slot)).
		Str("primary", ref.Primary).
		Str("fallback", ref.Fallback).
		Str("client", client.String()).
		Msg("asset load failure")
	if a.Failures == nil || client.Bot {
		return
	}
	err := a.Failures.Record(AssetFailure{
		Slot:     string(ref.Slot),
		Primary:  ref.Primary,
		Fallback: ref.Fallback,
		Client:   client.String(),
	})
	if err != nil {
		log.Error().Err(err).Msg("recording asset failure")
	}
}

func (a *App) handleUnmount(c echo.Context) error {
	if id := c.FormValue("view"); id != "" && ownsView(c, id) {
		a.Views.Unmount(id)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"views":  a.Views.Len(),
	})
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n\n")
	b.WriteString("Sitemap: " + a.Config.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	meta := views.NewPageMeta(a.Config.URL, a.Content)
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && c.Request().Method == http.MethodGet &&
		!strings.HasPrefix(c.Request().URL.Path, "/assets/") {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(meta))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = RenderStatus(c, code, views.ServerError(meta))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
