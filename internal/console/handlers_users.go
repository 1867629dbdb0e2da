package console

import (
	"context"
	"net/http"

	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
	"golang.org/x/sync/errgroup"
)

// Users can be listed and edited here; accounts are created and removed by players.

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	g, ctx := errgroup.WithContext(r.Context())
	var page *types.Page[models.User]
	g.Go(func() error {
		var err error
		page, err = s.client.Users.List(ctx, s.page(r))
		return err
	})
	var stats string
	g.Go(func() error {
		stats = report(ctx, "user stats", s.client.Users.StatsSummary)
		return nil
	})
	if err := g.Wait(); err != nil {
		s.renderFetchError(w, r, err, "/users", "Back to users")
		return
	}

	view := listView{
		Panels: panels(panelView{Title: "Statistics", Body: stats}),
		Actions: []actionView{{
			Label: "Search duplicates",
			URL:   "/users/duplicates",
			Next:  r.URL.RequestURI(),
		}},
		Columns: []string{"ID", "Wallet", "Nickname", "Referral route", "Days registered", "Active"},
		Empty:   "No users found.",
		Pager:   pagerFor(r, page, s.config.PageSize),
	}
	for _, u := range page.Items {
		wallet := u.WalletShort
		if wallet == "" {
			wallet = models.Truncate(u.WalletAddress)
		}
		view.Rows = append(view.Rows, rowView{
			Cells: []cellView{
				textCell(idText(u.ID)),
				{Text: wallet, Title: u.WalletAddress},
				textCell(u.Nickname),
				textCell(u.ReferralRoute),
				numberCell(u.DaysSinceRegistration),
				yesNo(u.IsActive),
			},
			Links: []linkView{{Label: "Edit", URL: "/users/" + idText(u.ID)}},
		})
	}
	s.render(w, r, http.StatusOK, "Users", listPage(view))
}

func (s *Server) handleUserForm(w http.ResponseWriter, r *http.Request) {
	id, _, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/users", "Back to users")
		return
	}
	user, err := s.client.Users.Get(r.Context(), id)
	if err != nil {
		s.renderFetchError(w, r, err, "/users", "Back to users")
		return
	}
	s.renderUserForm(w, r, http.StatusOK, user.WalletAddress, user.Input(), nil)
}

func (s *Server) handleUserSave(w http.ResponseWriter, r *http.Request) {
	id, _, err := routeID(r)
	if err != nil {
		s.renderFetchError(w, r, err, "/users", "Back to users")
		return
	}

	f := newFormReader(r)
	in := models.UserInput{
		Nickname:      f.String("nickname"),
		ReferralRoute: f.String("referral_route"),
		AvatarURL:     f.String("avatar_url"),
		IsActive:      f.Bool("is_active"),
	}
	if err := s.save(r.Context(), f, in, func(ctx context.Context) error {
		_, err := s.client.Users.Update(ctx, id, in)
		return err
	}); err != nil {
		logFailure(r, err, "user save failed")
		s.renderUserForm(w, r, http.StatusUnprocessableEntity, f.String("wallet_address"), in, err)
		return
	}
	s.actionDone(w, r, "User saved", "/users")
}

func (s *Server) renderUserForm(w http.ResponseWriter, r *http.Request, status int, wallet string, in models.UserInput, err error) {
	wf := textField("wallet_address", "Wallet", wallet)
	s.render(w, r, status, "Edit user", formPage(formView{
		Action:  r.URL.Path,
		BackURL: "/users",
		Submit:  submitLabel(false),
		Error:   formError(err),
		Fields: []fieldView{
			wf.typed("readonly"),
			textField("nickname", "Nickname", in.Nickname),
			textField("referral_route", "Referral route", in.ReferralRoute),
			textField("avatar_url", "Avatar URL", in.AvatarURL).typed("url"),
			checkField("is_active", "Active", in.IsActive),
		},
	}))
}

// handleUserDuplicates runs the duplicate-account search and shows its report
func (s *Server) handleUserDuplicates(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r, "/users")
	result, err := s.client.Users.SearchDuplicates(r.Context())
	if err != nil {
		s.actionFailed(w, r, err, next)
		return
	}
	if result == "" {
		result = "No duplicate accounts found"
	}
	s.actionDone(w, r, result, next)
}
