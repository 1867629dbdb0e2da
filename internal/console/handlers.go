package console

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/league-panel/internal/adapter"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/logging"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
)

// lookupPage bounds the option lists of pickers
var lookupPage = adapter.PageOf(0, 100)

const newSentinel = "new"

// routeID parses the {id} route variable. isNew is true for the create sentinel.
func routeID(r *http.Request) (id int64, isNew bool, err error) {
	raw := mux.Vars(r)["id"]
	if raw == newSentinel {
		return 0, true, nil
	}
	id, err = strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperrors.NewInvalidParameterError("id", "must be a whole number")
	}
	return id, false, nil
}

// page returns the pagination cursor of a list screen
func (s *Server) page(r *http.Request) adapter.Pagination {
	return adapter.PageOf(skipParam(r), s.config.PageSize)
}

func skipParam(r *http.Request) int {
	skip, err := strconv.Atoi(r.URL.Query().Get("skip"))
	if err != nil || skip < 0 {
		return 0
	}
	return skip
}

// boolParam reads a tri-state filter: absent or unrecognized is nil
func boolParam(r *http.Request, name string) *bool {
	switch r.URL.Query().Get(name) {
	case "true":
		return adapter.Bool(true)
	case "false":
		return adapter.Bool(false)
	default:
		return nil
	}
}

func int64Param(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func stringParam(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// lookup fetches picker options. Failures are logged and yield no options.
func lookup[T any](ctx context.Context, what string, fetch func(context.Context) (*types.Page[T], error)) []T {
	page, err := fetch(ctx)
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("lookup", what).Warn("lookup failed")
		return nil
	}
	return page.Items
}

// report fetches a text report for a side panel. Failures are logged and yield "".
func report(ctx context.Context, what string, fetch func(context.Context) (string, error)) string {
	text, err := fetch(ctx)
	if err != nil {
		logging.FromContext(ctx).WithError(err).WithField("report", what).Warn("report failed")
		return ""
	}
	return text
}

func panels(items ...panelView) []panelView {
	var out []panelView
	for _, p := range items {
		if p.Body != "" {
			out = append(out, p)
		}
	}
	return out
}

func yesNo(b bool) cellView {
	if b {
		return cellView{Text: "Yes"}
	}
	return cellView{Text: "No"}
}

func textCell(s string) cellView {
	return cellView{Text: s}
}

// amountCell shows a long decimal shortened, with the full value on hover
func amountCell(s string) cellView {
	return cellView{Text: models.Truncate(s), Title: s}
}

func numberCell(v interface{}) cellView {
	return cellView{Text: formatNumber(v)}
}

func idText(id int64) string {
	return strconv.FormatInt(id, 10)
}

// deleteAction is the row button that deletes a record and returns to the current screen
func deleteAction(r *http.Request, url, what string) actionView {
	return actionView{
		Label:   "Delete",
		URL:     url,
		Next:    r.URL.RequestURI(),
		Confirm: "Delete " + what + "? This cannot be undone.",
		Danger:  true,
	}
}

// deleted finishes a delete action with the backend's confirmation, or a default one
func (s *Server) deleted(w http.ResponseWriter, r *http.Request, confirmation, what, next string) {
	if confirmation == "" {
		confirmation = what + " deleted"
	}
	s.actionDone(w, r, confirmation, next)
}

func tokenOptions(tokens []models.Token) []optionView {
	opts := []optionView{{Value: "0", Label: "Select token"}}
	for _, t := range tokens {
		opts = append(opts, optionView{Value: idText(t.ID), Label: t.Name + " (" + t.Symbol + ")"})
	}
	return opts
}

func rarityOptions(rarities []models.Rarity) []optionView {
	opts := []optionView{{Value: "0", Label: "Select rarity"}}
	for _, r := range rarities {
		opts = append(opts, optionView{Value: idText(r.ID), Label: r.Name})
	}
	return opts
}

func tournamentOptions(tournaments []models.Tournament) []optionView {
	opts := []optionView{{Value: "0", Label: "Select tournament"}}
	for _, t := range tournaments {
		opts = append(opts, optionView{
			Value: idText(t.ID),
			Label: "#" + strconv.Itoa(t.TournamentNumber) + " (" + string(t.Status) + ")",
		})
	}
	return opts
}

func rewardTypeOptions(rewardTypes []models.RewardType) []optionView {
	opts := []optionView{{Value: "0", Label: "Select reward type"}}
	for _, rt := range rewardTypes {
		opts = append(opts, optionView{Value: idText(rt.ID), Label: rt.Name})
	}
	return opts
}

func statusOptions(withAny bool) []optionView {
	var opts []optionView
	if withAny {
		opts = append(opts, optionView{Value: "", Label: "Any status"})
	}
	for _, st := range types.TournamentStatuses {
		opts = append(opts, optionView{Value: string(st), Label: string(st)})
	}
	return opts
}

func optionalText(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// save runs the form's conversion and presence checks, then persist. The first failure is returned.
func (s *Server) save(ctx context.Context, f *formReader, in interface{}, persist func(context.Context) error) error {
	if err := f.Err(); err != nil {
		return err
	}
	if err := validateInput(in); err != nil {
		return err
	}
	return persist(ctx)
}

func formTitle(isNew bool, what string) string {
	if isNew {
		return "New " + what
	}
	return "Edit " + what
}

func submitLabel(isNew bool) string {
	if isNew {
		return "Create"
	}
	return "Save"
}

// formError is the inline banner text of a failed save
func formError(err error) string {
	if err == nil {
		return ""
	}
	return apperrors.UserMessage(err)
}
