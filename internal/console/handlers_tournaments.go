package console

import (
	"context"
	"net/http"
	"strconv"

	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
	"golang.org/x/sync/errgroup"
)

func (s *Server) handleTournamentList(w http.ResponseWriter, r *http.Request) {
	filter := adapter.TournamentFilter{
		Status:     stringParam(r, "status"),
		ActiveOnly: boolParam(r, "active_only"),
	}

	g, ctx := errgroup.WithContext(r.Context())
	var page *types.Page[models.Tournament]
	g.Go(func() error {
		var err error
		page, err = s.client.Tournaments.List(ctx, filter, s.page(r))
		return err
	})
	var stats string
	g.Go(func() error {
		stats = report(ctx, "tournament stats", s.client.Tournaments.StatsSummary)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
		return
	}

	view := listView{
		NewURL:   "/tournaments/new",
		NewLabel: "New tournament",
		Filters: []fieldView{
			selectField("status", "Status", r.URL.Query().Get("status"), statusOptions(true)),
			selectField("active_only", "Active", r.URL.Query().Get("active_only"), activeFilterOptions),
		},
		Panels:  panels(panelView{Title: "Statistics", Body: stats}),
		Columns: []string{"ID", "Number", "Status", "Start", "End", "Weight limit", "Days", "Active"},
		Empty:   "No tournaments found.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, t := range page.Items {
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(t.ID)),
				textCell("#" + strconv.Itoa(t.TournamentNumber)),
				textCell(string(t.Status)),
				textCell(models.DateTimeLocal(t.StartDate)),
				textCell(models.DateTimeLocal(t.EndDate)),
				numberCell(t.WeightLimit),
				numberCell(t.DurationDays),
				yesNo(t.IsActive),
			},
			Links: []linkView{
				{Label: "Details", URL: "/tournaments/" + idText(t.ID) + "/details"},
				{Label: "Edit", URL: "/tournaments/" + idText(t.ID)},
			},
			Actions: []actionView{deleteAction(r, "/tournaments/"+idText(t.ID)+"/delete", "tournament #"+strconv.Itoa(t.TournamentNumber))},
		})
	}
	s.render(w, r, http.StatusOK, "Tournaments", listPage(view))
}

func (s *Server) handleTournamentForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
		return
	}

	in := models.NewTournamentInput()
	if !isNew {
		t, err := s.client.Tournaments.Get(r.Context(), id)
		if err != nil {
			s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
			return
		}
		in = t.Input()
	}
	s.renderTournamentForm(w, r, http.StatusOK, isNew, in, nil)
}

func (s *Server) handleTournamentSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
		return
	}

	f := newFormReader(r)
	in := models.TournamentInput{
		TournamentNumber: f.Int("tournament_number"),
		Status:           types.TournamentStatus(f.String("status")),
		StartDate:        f.String("start_date"),
		EndDate:          f.String("end_date"),
		WeightLimit:      f.OptionalFloat("weight_limit"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.Tournaments.Create(ctx, in)
			return err
		}
		_, err := s.client.Tournaments.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "tournament save failed")
		s.renderTournamentForm(w, r, http.StatusUnprocessableEntity, isNew, in, err)
		return
	}
	s.actionDone(w, r, "Tournament saved", "/tournaments")
}

func (s *Server) renderTournamentForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.TournamentInput, err error) {
	s.render(w, r, status, formTitle(isNew, "tournament"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/tournaments",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			numberField("tournament_number", "Tournament number", in.TournamentNumber).required(),
			selectField("status", "Status", string(in.Status), statusOptions(false)).required(),
			dateField("start_date", "Start", in.StartDate).required(),
			dateField("end_date", "End", in.EndDate).required(),
			numberField("weight_limit", "Weight limit", in.WeightLimit).step("any"),
		},
	}))
}

func (s *Server) handleTournamentDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/tournaments")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Tournaments.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Tournament "+idText(id), next)
}

// Details tabs
const (
	tabDecks   = "decks"
	tabResults = "results"
	tabPrizes  = "prizes"
)

type tabView struct {
	Label  string
	URL    string
	Active bool
}

type summaryItem struct {
	Label string
	Value string
}

// detailsView is the tournament summary above one paginated tab
type detailsView struct {
	Summary []summaryItem
	EditURL string
	Tabs    []tabView
	List    listView
}

// handleTournamentDetails shows a tournament with its decks, results or prizes.
// Each tab keeps its own cursor in ?skip=; switching tabs starts at the first page.
func (s *Server) handleTournamentDetails(w http.ResponseWriter, r *http.Request) {
	id, _, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
		return
	}
	tab := r.URL.Query().Get("tab")
	switch tab {
	case tabDecks, tabResults, tabPrizes:
	default:
		tab = tabDecks
	}

	g, ctx := errgroup.WithContext(r.Context())
	var t *models.Tournament
	g.Go(func() error {
		var err error
		t, err = s.client.Tournaments.Get(ctx, id)
		return err
	})
	var list listView
	g.Go(func() error {
		var err error
		switch tab {
		case tabResults:
			list, err = s.resultsTab(ctx, r, id)
		case tabPrizes:
			list, err = s.prizesTab(ctx, r, id)
		default:
			list, err = s.decksTab(ctx, r, id)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/tournaments", "Back to tournaments")
		return
	}

	base := "/tournaments/" + idText(id) + "/details?tab="
	view := detailsView{
		Summary: []summaryItem{
			{Label: "Number", Value: "#" + strconv.Itoa(t.TournamentNumber)},
			{Label: "Status", Value: string(t.Status)},
			{Label: "Start", Value: models.DateTimeLocal(t.StartDate)},
			{Label: "End", Value: models.DateTimeLocal(t.EndDate)},
			{Label: "Weight limit", Value: formatNumber(t.WeightLimit)},
			{Label: "Duration (days)", Value: strconv.Itoa(t.DurationDays)},
		},
		EditURL: "/tournaments/" + idText(id),
		Tabs: []tabView{
			{Label: "Decks", URL: base + tabDecks, Active: tab == tabDecks},
			{Label: "Results", URL: base + tabResults, Active: tab == tabResults},
			{Label: "Prizes", URL: base + tabPrizes, Active: tab == tabPrizes},
		},
		List: list,
	}
	s.render(w, r, http.StatusOK, "Tournament #"+strconv.Itoa(t.TournamentNumber), detailsPage(view))
}

func (s *Server) decksTab(ctx context.Context, r *http.Request, tournamentID int64) (listView, error) {
	page, err := s.client.Tournaments.Decks(ctx, tournamentID, s.page(r))
	if err != nil {
		return listView{}, err
	}
	view := listView{
		Columns: []string{"ID", "User", "Deck hash", "Valid", "Active", "Transaction", "Submitted"},
		Empty:   "No decks submitted.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, d := range page.Items {
		view.Rows = append(view.Rows, rowView{Cells: []cellView{
			textCell(idText(d.ID)),
			textCell(idText(d.UserID)),
			{Text: models.Truncate(d.DeckHash), Title: string(d.DeckComposition)},
			{Text: yesNo(d.IsValid).Text, Title: string(d.ValidationErrors)},
			yesNo(d.IsActive),
			amountCell(optionalText(d.TransactionHash)),
			textCell(models.DateTimeLocal(d.SubmittedAt)),
		}})
	}
	return view, nil
}

func (s *Server) resultsTab(ctx context.Context, r *http.Request, tournamentID int64) (listView, error) {
	page, err := s.client.Tournaments.Results(ctx, tournamentID, s.page(r))
	if err != nil {
		return listView{}, err
	}
	view := listView{
		Columns: []string{"ID", "Positions", "Reward type", "Amount", "Created"},
		Empty:   "No results yet.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, res := range page.Items {
		view.Rows = append(view.Rows, rowView{Cells: []cellView{
			textCell(idText(res.ID)),
			textCell(positions(res.PositionFrom, res.PositionTo)),
			textCell(idText(res.RewardTypeID)),
			amountCell(res.RewardAmount.String()),
			textCell(models.DateTimeLocal(res.CreatedAt)),
		}})
	}
	return view, nil
}

func (s *Server) prizesTab(ctx context.Context, r *http.Request, tournamentID int64) (listView, error) {
	page, err := s.client.Prizes.List(ctx, &tournamentID, s.page(r))
	if err != nil {
		return listView{}, err
	}
	view := prizeRows(r, page.Items, true)
	view.NewURL = "/prizes/new?tournament_id=" + idText(tournamentID)
	view.NewLabel = "New prize"
	view.Pager = pagerFor(r, page, s.config.PageSize)
	return view, nil
}

func positions(from, to int) string {
	if from == to {
		return strconv.Itoa(from)
	}
	return strconv.Itoa(from) + "–" + strconv.Itoa(to)
}

// Prizes

func (s *Server) handlePrizeList(w http.ResponseWriter, r *http.Request) {
	tournamentID := int64Param(r, "tournament_id")

	g, ctx := errgroup.WithContext(r.Context())
	var page *types.Page[models.TournamentPrize]
	g.Go(func() error {
		var err error
		page, err = s.client.Prizes.List(ctx, tournamentID, s.page(r))
		return err
	})
	var tournaments []models.Tournament
	g.Go(func() error {
		tournaments = lookup(ctx, "tournaments", s.listTournaments)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/prizes", "Back to prizes")
		return
	}

	tournamentFilter := []optionView{{Value: "", Label: "All tournaments"}}
	tournamentFilter = append(tournamentFilter, tournamentOptions(tournaments)[1:]...)

	view := prizeRows(r, page.Items, false)
	view.NewURL = "/prizes/new"
	if tournamentID != nil {
		view.NewURL += "?tournament_id=" + idText(*tournamentID)
	}
	view.NewLabel = "New prize"
	view.Filters = []fieldView{
		selectField("tournament_id", "Tournament", r.URL.Query().Get("tournament_id"), tournamentFilter),
	}
	view.Pager = pagerFor(r, page, s.config.PageSize)
	s.render(w, r, http.StatusOK, "Prizes", listPage(view))
}

// prizeRows renders prize rows. Scoped rows edit within their tournament.
func prizeRows(r *http.Request, prizes []models.TournamentPrize, scoped bool) listView {
	view := listView{
		Columns: []string{"ID", "Tournament", "Positions", "Reward type", "Amount"},
		Empty:   "No prizes configured.",
	}
	for _, p := range prizes {
		edit := "/prizes/" + idText(p.ID)
		if scoped {
			edit += "?tournament_id=" + idText(p.TournamentID)
		}
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(p.ID)),
				textCell(idText(p.TournamentID)),
				textCell(positions(p.PositionFrom, p.PositionTo)),
				textCell(idText(p.RewardTypeID)),
				amountCell(p.RewardAmount.String()),
			},
			Links:   []linkView{{Label: "Edit", URL: edit}},
			Actions: []actionView{deleteAction(r, "/prizes/"+idText(p.ID)+"/delete", "prize "+idText(p.ID))},
		})
	}
	return view
}

func (s *Server) listTournaments(ctx context.Context) (*types.Page[models.Tournament], error) {
	return s.client.Tournaments.List(ctx, adapter.TournamentFilter{}, lookupPage)
}

func (s *Server) listRewardTypes(ctx context.Context) (*types.Page[models.RewardType], error) {
	return s.client.RewardTypes.List(ctx, lookupPage)
}

// prizePickers loads the tournament and reward type options of the prize form
func (s *Server) prizePickers(ctx context.Context) (tournaments []models.Tournament, rewardTypes []models.RewardType) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tournaments = lookup(ctx, "tournaments", s.listTournaments)
		return nil
	})
	g.Go(func() error {
		rewardTypes = lookup(ctx, "reward types", s.listRewardTypes)
		return nil
	})
	_ = g.Wait()
	return tournaments, rewardTypes
}

// prizeReturn is the screen a prize form goes back to: the tournament's prizes tab when scoped
func prizeReturn(tournamentID int64) string {
	if tournamentID == 0 {
		return "/prizes"
	}
	return "/tournaments/" + idText(tournamentID) + "/details?tab=prizes"
}

func (s *Server) handlePrizeForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/prizes", "Back to prizes")
		return
	}
	var scope int64
	if tid := int64Param(r, "tournament_id"); tid != nil {
		scope = *tid
	}

	g, ctx := errgroup.WithContext(r.Context())
	in := models.NewTournamentPrizeInput(scope)
	if !isNew {
		g.Go(func() error {
			prize, err := s.client.Prizes.Get(ctx, id)
			if err != nil {
				return err
			}
			in = prize.Input()
			return nil
		})
	}
	var tournaments []models.Tournament
	var rewardTypes []models.RewardType
	g.Go(func() error {
		tournaments, rewardTypes = s.prizePickers(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, prizeReturn(scope), "Back to prizes")
		return
	}
	s.renderPrizeForm(w, r, http.StatusOK, isNew, in, scope, tournaments, rewardTypes, nil)
}

func (s *Server) handlePrizeSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/prizes", "Back to prizes")
		return
	}
	var scope int64
	if tid := int64Param(r, "tournament_id"); tid != nil {
		scope = *tid
	}

	f := newFormReader(r)
	in := models.TournamentPrizeInput{
		TournamentID: f.Int64("tournament_id"),
		PositionFrom: f.Int("position_from"),
		PositionTo:   f.Int("position_to"),
		RewardTypeID: f.Int64("reward_type_id"),
		RewardAmount: f.Decimal("reward_amount"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.Prizes.Create(ctx, in)
			return err
		}
		_, err := s.client.Prizes.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "prize save failed")
		tournaments, rewardTypes := s.prizePickers(r.Context())
		s.renderPrizeForm(w, r, http.StatusUnprocessableEntity, isNew, in, scope, tournaments, rewardTypes, err)
		return
	}
	s.actionDone(w, r, "Prize saved", prizeReturn(scope))
}

func (s *Server) renderPrizeForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.TournamentPrizeInput, scope int64, tournaments []models.Tournament, rewardTypes []models.RewardType, err error) {
	s.render(w, r, status, formTitle(isNew, "prize"), formPage(formView{
		Action:  r.URL.RequestURI(),
		BackURL: prizeReturn(scope),
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			selectField("tournament_id", "Tournament", idText(in.TournamentID), tournamentOptions(tournaments)).required(),
			numberField("position_from", "From position", in.PositionFrom),
			numberField("position_to", "To position", in.PositionTo),
			selectField("reward_type_id", "Reward type", idText(in.RewardTypeID), rewardTypeOptions(rewardTypes)),
			decimalField("reward_amount", "Reward amount", in.RewardAmount),
		},
	}))
}

func (s *Server) handlePrizeDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/prizes")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Prizes.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Prize "+idText(id), next)
}
