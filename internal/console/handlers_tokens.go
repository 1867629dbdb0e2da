package console

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
	"golang.org/x/sync/errgroup"
)

func (s *Server) handleTokenList(w http.ResponseWriter, r *http.Request) {
	filter := adapter.TokenFilter{ActiveOnly: boolParam(r, "active_only")}

	g, ctx := errgroup.WithContext(r.Context())
	var page *types.Page[models.Token]
	g.Go(func() error {
		var err error
		page, err = s.client.Tokens.List(ctx, filter, s.page(r))
		return err
	})
	var scheduler string
	g.Go(func() error {
		scheduler = report(ctx, "scheduler status", s.client.Tokens.SchedulerStatus)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
		return
	}

	view := listView{
		NewURL:   "/tokens/new",
		NewLabel: "New token",
		Filters: []fieldView{
			selectField("active_only", "Status", r.URL.Query().Get("active_only"), activeFilterOptions),
		},
		Panels: panels(panelView{Title: "Price scheduler", Body: scheduler}),
		Actions: []actionView{{
			Label:   "Collect prices now",
			URL:     "/tokens/scheduler/trigger",
			Next:    r.URL.RequestURI(),
			Confirm: "Start a price collection run now?",
		}},
		Columns: []string{"ID", "Name", "Symbol", "Weight", "Active"},
		Empty:   "No tokens found.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, t := range page.Items {
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(t.ID)),
				textCell(t.Name),
				textCell(t.Symbol),
				numberCell(t.Weight),
				yesNo(t.IsActive),
			},
			Links: []linkView{
				{Label: "Edit", URL: "/tokens/" + idText(t.ID)},
				{Label: "Prices", URL: "/tokens/" + idText(t.ID) + "/prices"},
			},
			Actions: []actionView{deleteAction(r, "/tokens/"+idText(t.ID)+"/delete", "token "+t.Name)},
		})
	}
	s.render(w, r, http.StatusOK, "Tokens", listPage(view))
}

// handleTokenPrices shows a token's price history
func (s *Server) handleTokenPrices(w http.ResponseWriter, r *http.Request) {
	tokenID, _, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	var token *models.Token
	g.Go(func() error {
		var err error
		token, err = s.client.Tokens.Get(ctx, tokenID)
		return err
	})
	var prices *types.Page[models.TokenPrice]
	g.Go(func() error {
		var err error
		prices, err = s.client.Tokens.Prices(ctx, tokenID, s.page(r))
		return err
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
		return
	}

	view := listView{
		Columns: []string{"Time", "Price", "Market cap", "24h change", "Sources"},
		Empty:   "No prices collected yet.",
		Pager:   pagerFor(r, prices, s.config.PageSize),
	}
	for _, p := range prices.Items {
		row := rowView{Cells: []cellView{
			textCell(p.Timestamp),
			amountCell(p.Price.String()),
			textCell(""),
			textCell(""),
			numberCell(p.SourcesCount),
		}}
		if p.MarketCap.Valid {
			row.Cells[2] = amountCell(p.MarketCap.Decimal.String())
		}
		if p.Change24h.Valid {
			row.Cells[3] = textCell(p.Change24h.Decimal.String() + "%")
		}
		view.Rows = append(view.Rows, row)
	}
	s.render(w, r, http.StatusOK, "Prices of "+token.Name+" ("+token.Symbol+")", listPage(view))
}

func (s *Server) handleTokenForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
		return
	}

	in := models.NewTokenInput()
	if !isNew {
		token, err := s.client.Tokens.Get(r.Context(), id)
		if err != nil {
			s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
			return
		}
		in = token.Input()
	}
	s.renderTokenForm(w, r, http.StatusOK, isNew, in, nil)
}

func (s *Server) handleTokenSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tokens", "Back to tokens")
		return
	}

	f := newFormReader(r)
	in := models.TokenInput{
		Name:     f.String("name"),
		Symbol:   f.String("symbol"),
		Weight:   f.Float("weight"),
		ImageURL: f.String("image_url"),
		IsActive: f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.Tokens.Create(ctx, in)
			return err
		}
		_, err := s.client.Tokens.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "token save failed")
		s.renderTokenForm(w, r, http.StatusUnprocessableEntity, isNew, in, err)
		return
	}
	s.actionDone(w, r, "Token saved", "/tokens")
}

func (s *Server) renderTokenForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.TokenInput, err error) {
	s.render(w, r, status, formTitle(isNew, "token"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/tokens",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			textField("name", "Name", in.Name).required(),
			textField("symbol", "Symbol", in.Symbol).required(),
			numberField("weight", "Weight", in.Weight).step("any"),
			textField("image_url", "Image URL", in.ImageURL).typed("url"),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

func (s *Server) handleTokenDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/tokens")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Tokens.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Token "+idText(id), next)
}

// handleSchedulerTrigger starts a price collection run and shows the backend's answer
func (s *Server) handleSchedulerTrigger(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/tokens")
	msg, err := s.client.Tokens.TriggerScheduler(r.Context())
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	if msg == "" {
		msg = "Price collection started"
	}
	s.actionDone(w, r, msg, next)
}
