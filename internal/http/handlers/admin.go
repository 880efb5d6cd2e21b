package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"assetdesk/internal/domain/asset"
	"assetdesk/internal/listing"
	"assetdesk/internal/services/inventory"
	"assetdesk/internal/store/repositories"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

var adminTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type option struct {
	Value    string
	Label    string
	Selected bool
}

type pageLink struct {
	Label   string
	Href    string
	Current bool
	Gap     bool
}

type sizeLink struct {
	Size    int
	Href    string
	Current bool
}

type adminAssetsView struct {
	State         listing.ListState
	Items         []*asset.Asset
	TotalElements int64
	TotalPages    int
	Categories    []option
	Statuses      []option
	Pages         []pageLink
	Sizes         []sizeLink
	PrevHref      string
	NextHref      string
	ClearHref     string
}

// AdminAssets renders the paginated asset table. The list state lives in the
// query string; a request whose query is not in canonical form is redirected
// to the canonical URL first.
func AdminAssets(svc *inventory.Service, maxVisiblePages int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// replacing the URL server-side means redirecting to it
		syncer := listing.NewSyncer(listing.HistoryFunc(func(u *url.URL) {
			http.Redirect(w, r, u.String(), http.StatusFound)
		}), r.URL)

		state := listing.ReadListStateValues(r.URL.Query())
		if syncer.Sync(state) {
			return
		}

		req := inventory.SearchRequest{
			Filter: repositories.Filter{Category: state.Category, Status: state.Status, Query: state.Query},
			Page:   state.PageIndex,
			Size:   state.PageSize,
		}
		resp, err := svc.Search(r.Context(), req)
		var perr *inventory.ParamError
		if errors.As(err, &perr) && perr.Param == "page" {
			// unreachable page index; fetch the first page to find the last one
			req.Page = 0
			resp, err = svc.Search(r.Context(), req)
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		// past the last page, e.g. after deletions
		if state.PageIndex > 0 && state.PageIndex >= resp.TotalPages {
			syncer.Sync(state.Apply(listing.SetPage(max(resp.TotalPages-1, 0))))
			return
		}

		view := buildAdminView(r.URL, state, resp, maxVisiblePages)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := adminTemplates.ExecuteTemplate(w, "assets.html", view); err != nil {
			log.Error().Err(err).Msg("render admin assets")
		}
	}
}

func buildAdminView(current *url.URL, state listing.ListState, resp *inventory.PageResponse, maxVisiblePages int) adminAssetsView {
	view := adminAssetsView{
		State:         state,
		Items:         resp.Items,
		TotalElements: resp.TotalElements,
		TotalPages:    resp.TotalPages,
	}

	for _, c := range asset.Categories {
		view.Categories = append(view.Categories, option{Value: string(c), Label: c.Label(), Selected: c == state.Category})
	}
	for _, s := range asset.Statuses {
		view.Statuses = append(view.Statuses, option{Value: string(s), Label: s.Label(), Selected: s == state.Status})
	}

	for _, item := range listing.BuildPageWindow(state.PageIndex, resp.TotalPages, maxVisiblePages) {
		if item.IsGap() {
			view.Pages = append(view.Pages, pageLink{Label: item.Label(), Gap: true})
			continue
		}
		view.Pages = append(view.Pages, pageLink{
			Label:   item.Label(),
			Href:    link(current, state.Apply(listing.SetPage(item.Page()))),
			Current: item.Page() == state.PageIndex,
		})
	}

	for _, n := range listing.PageSizeOptions {
		view.Sizes = append(view.Sizes, sizeLink{
			Size:    n,
			Href:    link(current, state.Apply(listing.SetPageSize(n))),
			Current: n == state.PageSize,
		})
	}

	if state.PageIndex > 0 {
		view.PrevHref = link(current, state.Apply(listing.SetPage(state.PageIndex-1)))
	}
	if state.PageIndex+1 < resp.TotalPages {
		view.NextHref = link(current, state.Apply(listing.SetPage(state.PageIndex+1)))
	}
	if state.HasFilters() {
		view.ClearHref = link(current, state.Apply(listing.ClearFilters()))
	}
	return view
}

func link(current *url.URL, s listing.ListState) string {
	u, _ := listing.WriteListState(current, s)
	return u.String()
}
