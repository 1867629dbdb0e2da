package console

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/models"
)

// Rarities

func (s *Server) handleRarityList(w http.ResponseWriter, r *http.Request) {
	page, err := s.client.Rarities.List(r.Context(), s.page(r))
	if err != nil {
		s.renderFetchError(w, r, err, "/rarities", "Back to rarities")
		return
	}

	view := listView{
		NewURL:   "/rarities/new",
		NewLabel: "New rarity",
		Columns:  []string{"ID", "Name", "Color", "Score bonus", "Active"},
		Empty:    "No rarities found.",
		Pager:    pagerFor(r, page, s.config.PageSize),
	}
	for _, rt := range page.Items {
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(rt.ID)),
				{Text: rt.Name, Title: rt.Description},
				{Text: rt.Color, Swatch: rt.Color},
				numberCell(rt.ScoreBonus),
				yesNo(rt.IsActive),
			},
			Links:   []linkView{{Label: "Edit", URL: "/rarities/" + idText(rt.ID)}},
			Actions: []actionView{deleteAction(r, "/rarities/"+idText(rt.ID)+"/delete", "rarity "+rt.Name)},
		})
	}
	s.render(w, r, http.StatusOK, "Rarities", listPage(view))
}

func (s *Server) handleRarityForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/rarities", "Back to rarities")
		return
	}

	in := models.NewRarityInput()
	if !isNew {
		rarity, err := s.client.Rarities.Get(r.Context(), id)
		if err != nil {
			s.renderFetchError(w, r, err, "/rarities", "Back to rarities")
			return
		}
		in = rarity.Input()
	}
	s.renderRarityForm(w, r, http.StatusOK, isNew, in, nil)
}

func (s *Server) handleRaritySave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/rarities", "Back to rarities")
		return
	}

	f := newFormReader(r)
	in := models.RarityInput{
		Name:        f.String("name"),
		Description: f.String("description"),
		ScoreBonus:  f.Float("score_bonus"),
		Color:       f.String("color"),
		IsActive:    f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.Rarities.Create(ctx, in)
			return err
		}
		_, err := s.client.Rarities.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "rarity save failed")
		s.renderRarityForm(w, r, http.StatusUnprocessableEntity, isNew, in, err)
		return
	}
	s.actionDone(w, r, "Rarity saved", "/rarities")
}

func (s *Server) renderRarityForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.RarityInput, err error) {
	s.render(w, r, status, formTitle(isNew, "rarity"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/rarities",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			textField("name", "Name", in.Name).required(),
			textField("description", "Description", in.Description).typed("textarea"),
			numberField("score_bonus", "Score bonus", in.ScoreBonus).step("any"),
			textField("color", "Color", in.Color).typed("color").required(),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

func (s *Server) handleRarityDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/rarities")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.Rarities.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Rarity "+idText(id), next)
}

// Pack types

func (s *Server) handlePackTypeList(w http.ResponseWriter, r *http.Request) {
	page, err := s.client.PackTypes.List(r.Context(), s.page(r))
	if err != nil {
		s.renderFetchError(w, r, err, "/pack-types", "Back to pack types")
		return
	}

	view := listView{
		NewURL:   "/pack-types/new",
		NewLabel: "New pack type",
		Columns:  []string{"ID", "Name", "Cards", "Price", "Currency", "Supply", "Available from", "Available until", "Active"},
		Empty:    "No pack types found.",
		Pager:    pagerFor(r, page, s.config.PageSize),
	}
	for _, p := range page.Items {
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(p.ID)),
				{Text: p.Name, Title: p.Description},
				numberCell(p.CardsPerPack),
				amountCell(p.Price.String()),
				textCell(p.Currency),
				numberCell(p.Supply),
				textCell(models.DateTimeLocal(optionalText(p.AvailableFrom))),
				textCell(models.DateTimeLocal(optionalText(p.AvailableUntil))),
				yesNo(p.IsActive),
			},
			Links:   []linkView{{Label: "Edit", URL: "/pack-types/" + idText(p.ID)}},
			Actions: []actionView{deleteAction(r, "/pack-types/"+idText(p.ID)+"/delete", "pack type "+p.Name)},
		})
	}
	s.render(w, r, http.StatusOK, "Pack types", listPage(view))
}

func (s *Server) handlePackTypeForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/pack-types", "Back to pack types")
		return
	}

	in := models.NewPackTypeInput()
	if !isNew {
		pack, err := s.client.PackTypes.Get(r.Context(), id)
		if err != nil {
			s.renderFetchError(w, r, err, "/pack-types", "Back to pack types")
			return
		}
		in = pack.Input()
	}
	s.renderPackTypeForm(w, r, http.StatusOK, isNew, in, nil)
}

func (s *Server) handlePackTypeSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/pack-types", "Back to pack types")
		return
	}

	f := newFormReader(r)
	in := models.PackTypeInput{
		Name:            f.String("name"),
		Description:     f.String("description"),
		ImageURL:        f.String("image_url"),
		HeaderImageURL:  f.String("header_image_url"),
		CardsPerPack:    f.Int("cards_per_pack"),
		Price:           f.Decimal("price"),
		Currency:        f.String("currency"),
		Supply:          f.OptionalInt("supply"),
		AvailableFrom:   f.String("available_from"),
		AvailableUntil:  f.String("available_until"),
		GuaranteedSlots: f.String("guaranteed_slots"),
		IsActive:        f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.PackTypes.Create(ctx, in)
			return err
		}
		_, err := s.client.PackTypes.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "pack type save failed")
		s.renderPackTypeForm(w, r, http.StatusUnprocessableEntity, isNew, in, err)
		return
	}
	s.actionDone(w, r, "Pack type saved", "/pack-types")
}

func (s *Server) renderPackTypeForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.PackTypeInput, err error) {
	s.render(w, r, status, formTitle(isNew, "pack type"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/pack-types",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			textField("name", "Name", in.Name).required(),
			textField("description", "Description", in.Description).typed("textarea"),
			textField("image_url", "Image URL", in.ImageURL).typed("url"),
			textField("header_image_url", "Header image URL", in.HeaderImageURL).typed("url"),
			numberField("cards_per_pack", "Cards per pack", in.CardsPerPack),
			decimalField("price", "Price", in.Price),
			textField("currency", "Currency", in.Currency),
			numberField("supply", "Supply (empty for unlimited)", in.Supply),
			dateField("available_from", "Available from", in.AvailableFrom),
			dateField("available_until", "Available until", in.AvailableUntil),
			textField("guaranteed_slots", "Guaranteed slots", in.GuaranteedSlots),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

func (s *Server) handlePackTypeDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/pack-types")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.PackTypes.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Pack type "+idText(id), next)
}

// Reward types

func (s *Server) handleRewardTypeList(w http.ResponseWriter, r *http.Request) {
	page, err := s.client.RewardTypes.List(r.Context(), s.page(r))
	if err != nil {
		s.renderFetchError(w, r, err, "/reward-types", "Back to reward types")
		return
	}

	view := listView{
		NewURL:   "/reward-types/new",
		NewLabel: "New reward type",
		Columns:  []string{"ID", "Name", "Category", "Default amount", "Currency", "Claimable", "Expires after (days)", "Active"},
		Empty:    "No reward types found.",
		Pager:    pagerFor(r, page, s.config.PageSize),
	}
	for _, rt := range page.Items {
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(rt.ID)),
				{Text: rt.Name, Title: rt.Description},
				textCell(rt.RewardCategory),
				amountCell(rt.DefaultAmount.String()),
				textCell(rt.CurrencyType),
				yesNo(rt.IsClaimable),
				numberCell(rt.ExpiresAfterDays),
				yesNo(rt.IsActive),
			},
			Links:   []linkView{{Label: "Edit", URL: "/reward-types/" + idText(rt.ID)}},
			Actions: []actionView{deleteAction(r, "/reward-types/"+idText(rt.ID)+"/delete", "reward type "+rt.Name)},
		})
	}
	s.render(w, r, http.StatusOK, "Reward types", listPage(view))
}

func (s *Server) handleRewardTypeForm(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/reward-types", "Back to reward types")
		return
	}

	in := models.NewRewardTypeInput()
	if !isNew {
		rt, err := s.client.RewardTypes.Get(r.Context(), id)
		if err != nil {
			s.renderFetchError(w, r, err, "/reward-types", "Back to reward types")
			return
		}
		in = rt.Input()
	}
	s.renderRewardTypeForm(w, r, http.StatusOK, isNew, in, nil)
}

func (s *Server) handleRewardTypeSave(w http.ResponseWriter, r *http.Request) {
	id, isNew, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/reward-types", "Back to reward types")
		return
	}

	f := newFormReader(r)
	in := models.RewardTypeInput{
		Name:             f.String("name"),
		Description:      f.String("description"),
		RewardCategory:   f.String("reward_category"),
		DefaultAmount:    f.Decimal("default_amount"),
		CurrencyType:     f.String("currency_type"),
		IsClaimable:      f.Bool("is_claimable"),
		ExpiresAfterDays: f.Int("expires_after_days"),
		IsActive:         f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		if isNew {
			_, err := s.client.RewardTypes.Create(ctx, in)
			return err
		}
		_, err := s.client.RewardTypes.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "reward type save failed")
		s.renderRewardTypeForm(w, r, http.StatusUnprocessableEntity, isNew, in, err)
		return
	}
	s.actionDone(w, r, "Reward type saved", "/reward-types")
}

func (s *Server) renderRewardTypeForm(w http.ResponseWriter, r *http.Request, status int, isNew bool, in models.RewardTypeInput, err error) {
	s.render(w, r, status, formTitle(isNew, "reward type"), formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/reward-types",
		Submit:  submitLabel(isNew),
		Error:   formError(err),
		Fields: []fieldView{
			textField("name", "Name", in.Name).required(),
			textField("description", "Description", in.Description).typed("textarea"),
			textField("reward_category", "Category", in.RewardCategory).required(),
			decimalField("default_amount", "Default amount", in.DefaultAmount),
			textField("currency_type", "Currency", in.CurrencyType),
			checkField("is_claimable", "Claimable", in.IsClaimable),
			numberField("expires_after_days", "Expires after (days)", in.ExpiresAfterDays),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

func (s *Server) handleRewardTypeDelete(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/reward-types")
	id, _, err := routeID(r)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	msg, err := s.client.RewardTypes.Delete(r.Context(), id)
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	s.deleted(w, r, msg, "Reward type "+idText(id), next)
}
