package console

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/adapter"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
	"golang.org/x/sync/errgroup"
)

func (s *Server) handleCardList(w http.ResponseWriter, r *http.Request) {
	filter := adapter.CardFilter{
		ActiveOnly: boolParam(r, "active_only"),
		TokenID:    int64Param(r, "token_id"),
		Rarity:     stringParam(r, "rarity"),
	}

	g, ctx := errgroup.WithContext(r.Context())
	var page *types.Page[models.Card]
	g.Go(func() error {
		var err error
		page, err = s.client.Cards.List(ctx, filter, s.page(r))
		return err
	})
	var tokens []models.Token
	g.Go(func() error {
		tokens = lookup(ctx, "tokens", s.listTokens)
		return nil
	})
	var reference string
	g.Go(func() error {
		reference = report(ctx, "card reference options", s.client.Cards.ReferenceOptions)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/cards", "Back to cards")
		return
	}

	tokenFilter := []optionView{{Value: "", Label: "Any token"}}
	tokenFilter = append(tokenFilter, tokenOptions(tokens)[1:]...)

	view := listView{
		NewURL:   "/cards/new",
		NewLabel: "New card",
		Filters: []fieldView{
			selectField("active_only", "Status", r.URL.Query().Get("active_only"), activeFilterOptions),
			selectField("token_id", "Token", r.URL.Query().Get("token_id"), tokenFilter),
			textField("rarity", "Rarity", r.URL.Query().Get("rarity")),
		},
		Panels:  panels(panelView{Title: "Reference options", Body: reference}),
		Columns: []string{"ID", "Token", "Rarity", "Design", "Active"},
		Empty:   "No cards found.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, c := range page.Items {
		row := rowView{
			Cells: []cellView{
				textCell(idText(c.ID)),
				textCell(cardToken(c)),
				{Text: c.RarityLabel(), Swatch: c.RarityColor},
				textCell(c.DesignType),
				yesNo(c.IsActive),
			},
			Links: []linkView{{Label: "Edit", URL: "/cards/" + idText(c.ID)}},
		}
		if !c.IsActive {
			row.Actions = append(row.Actions, actionView{
				Label: "Activate",
				URL:   "/cards/" + idText(c.ID) + "/activate",
				Next:  r.URL.RequestURI(),
			})
		}
		row.Actions = append(row.Actions, deleteAction(r, "/cards/"+idText(c.ID)+"/delete", "card "+idText(c.ID)))
		view.Rows = append(view.Rows, row)
	}
	s.render(w, r, http.StatusOK, "Cards", listPage(view))
}

func cardToken(c models.Card) string {
	switch {
	case c.TokenName != "" && c.TokenSymbol != "":
		return c.TokenName + " (" + c.TokenSymbol + ")"
	case c.TokenName != "":
		return c.TokenName
	default:
		return "#" + idText(c.TokenID)
	}
}

func (s *Server) listTokens(ctx context.Context) (*types.Page[models.Token], error) {
	return s.client.Tokens.List(ctx, adapter.TokenFilter{}, lookupPage)
}

func (s *Server) listRarities(ctx context.Context) (*types.Page[models.Rarity], error) {
	return s.client.Rarities.List(ctx, lookupPage)
}

// cardPickers loads the token and rarity options of the card form
func (s *Server) cardPickers(ctx context.Context) (tokens []models.Token, rarities []models.Rarity) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tokens = lookup(ctx, "tokens", s.listTokens)
		return nil
	})
	g.Go(func() error {
		rarities = lookup(ctx, "rarities", s.listRarities)
		return nil
	})
	_ = g.Wait()
	return tokens, rarities
}

func (s *Server) handleCardForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/cards", "Back to cards")
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	in := models.NewCardInput()
	if !isNew {
		g.Go(func() error {
			card, err := s.client.Cards.Get(ctx, id)
			if err != nil {
				return err
			}
			in = card.Input()
			return nil
		})
	}
	var tokens []models.Token
	var rarities []models.Rarity
	g.Go(func() error {
		tokens, rarities = s.cardPickers(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/cards", "Back to cards")
		return
	}
	s.renderCardForm(w, r, http.StatusOK, isNew, in, tokens, rarities, nil)
}

func (s *Server) handleCardSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/cards", "Back to cards")
		return
	}

	f := newFormReader(r)
	in := models.CardInput{
		TokenID:            f.Int64("token_id"),
		RarityID:           f.Int64("rarity_id"),
		DesignType:         f.String("design_type"),
		BackgroundImageURL: f.String("background_image_url"),
		IsActive:           f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.Cards.Create(ctx, in)
			return err
		}
		_, err := s.client.Cards.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "card save failed")
		tokens, rarities := s.cardPickers(r.Context())
		s.renderCardForm(w, r, http.StatusUnprocessableEntity, isNew, in, tokens, rarities, err)
		return
	}
	s.actionDone(w, r, "Card saved", "/cards")
}

func (s *Server) renderCardForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.CardInput, tokens []models.Token, rarities []models.Rarity, err error) {
	s.render(w, r, status, formTitle(isNew, "card"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/cards",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			selectField("token_id", "Token", idText(in.TokenID), tokenOptions(tokens)).required(),
			selectField("rarity_id", "Rarity", idText(in.RarityID), rarityOptions(rarities)).required(),
			textField("design_type", "Design type", in.DesignType),
			textField("background_image_url", "Background image URL", in.BackgroundImageURL).typed("url"),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

func (s *Server) handleCardActivate(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/cards")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Cards.Activate(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	if msg == "" {
		msg = "Card " + idText(id) + " activated"
	}
	s.actionDone(w, r, msg, next)
}

func (s *Server) handleCardDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/cards")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Cards.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Card "+idText(id), next)
}
