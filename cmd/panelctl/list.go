package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/league-panel/internal/adapter"
	apperrors "github.com/league-panel/internal/errors"
	"github.com/league-panel/internal/models"
	"github.com/league-panel/internal/types"
)

// table is one page of a resource ready for printing
type table struct {
	header []string
	rows   [][]string
	total  int
	skip   int
	more   bool
}

func tableOf[T any](page *types.Page[T], err error, header []string, row func(T) []string) (*table, error) {
	if err != nil {
		return nil, err
	}
	t := &table{header: header, total: page.Total, skip: page.Skip, more: page.HasNext}
	for _, item := range page.Items {
		t.rows = append(t.rows, row(item))
	}
	return t, nil
}

func (c *cli) list(ctx context.Context, resource string) error {
	active, err := c.activeFilter()
	if err != nil {
		return err
	}

	var t *table
	switch resource {
	case "tokens":
		page, err := c.client.Tokens.List(ctx, adapter.TokenFilter{ActiveOnly: active}, c.page)
		t, err = tableOf(page, err, []string{"ID", "NAME", "SYMBOL", "WEIGHT", "ACTIVE"}, func(tk models.Token) []string {
			return []string{id(tk.ID), tk.Name, tk.Symbol, strconv.FormatFloat(tk.Weight, 'f', -1, 64), yesNo(tk.IsActive)}
		})
		if err != nil {
			return err
		}
	case "cards":
		f := adapter.CardFilter{ActiveOnly: active, TokenID: c.filters.tokenID}
		if c.filters.rarity != "" {
			f.Rarity = adapter.String(c.filters.rarity)
		}
		page, err := c.client.Cards.List(ctx, f, c.page)
		t, err = tableOf(page, err, []string{"ID", "TOKEN", "RARITY", "DESIGN", "ACTIVE"}, func(cd models.Card) []string {
			token := cd.TokenName
			if token == "" {
				token = id(cd.TokenID)
			}
			rarity := cd.RarityName
			if rarity == "" {
				rarity = cd.Rarity
			}
			return []string{id(cd.ID), token, rarity, cd.DesignType, yesNo(cd.IsActive)}
		})
		if err != nil {
			return err
		}
	case "rarities":
		page, err := c.client.Rarities.List(ctx, c.page)
		t, err = tableOf(page, err, []string{"ID", "NAME", "COLOR", "SCORE BONUS", "ACTIVE"}, func(r models.Rarity) []string {
			return []string{id(r.ID), r.Name, r.Color, strconv.FormatFloat(r.ScoreBonus, 'f', -1, 64), yesNo(r.IsActive)}
		})
		if err != nil {
			return err
		}
	case "pack-types":
		page, err := c.client.PackTypes.List(ctx, c.page)
		t, err = tableOf(page, err, []string{"ID", "NAME", "CARDS", "PRICE", "SUPPLY", "ACTIVE"}, func(p models.PackType) []string {
			supply := "-"
			if p.Supply != nil {
				supply = strconv.Itoa(*p.Supply)
			}
			price := strings.TrimSpace(models.Truncate(p.Price.String()) + " " + p.Currency)
			return []string{id(p.ID), p.Name, strconv.Itoa(p.CardsPerPack), price, supply, yesNo(p.IsActive)}
		})
		if err != nil {
			return err
		}
	case "reward-types":
		page, err := c.client.RewardTypes.List(ctx, c.page)
		t, err = tableOf(page, err, []string{"ID", "NAME", "CATEGORY", "DEFAULT AMOUNT", "CLAIMABLE", "ACTIVE"}, func(r models.RewardType) []string {
			amount := strings.TrimSpace(models.Truncate(r.DefaultAmount.String()) + " " + r.CurrencyType)
			return []string{id(r.ID), r.Name, r.RewardCategory, amount, yesNo(r.IsClaimable), yesNo(r.IsActive)}
		})
		if err != nil {
			return err
		}
	case "tournaments":
		f := adapter.TournamentFilter{ActiveOnly: active}
		if c.filters.status != "" {
			f.Status = adapter.String(c.filters.status)
		}
		page, err := c.client.Tournaments.List(ctx, f, c.page)
		t, err = tableOf(page, err, []string{"ID", "NUMBER", "STATUS", "START", "END", "ACTIVE"}, func(tr models.Tournament) []string {
			return []string{id(tr.ID), "#" + strconv.Itoa(tr.TournamentNumber), string(tr.Status),
				models.DateTimeLocal(tr.StartDate), models.DateTimeLocal(tr.EndDate), yesNo(tr.IsActive)}
		})
		if err != nil {
			return err
		}
	case "prizes":
		page, err := c.client.Prizes.List(ctx, c.filters.tournamentID, c.page)
		t, err = tableOf(page, err, []string{"ID", "TOURNAMENT", "POSITIONS", "REWARD TYPE", "AMOUNT"}, func(p models.TournamentPrize) []string {
			positions := strconv.Itoa(p.PositionFrom)
			if p.PositionTo != p.PositionFrom {
				positions += "-" + strconv.Itoa(p.PositionTo)
			}
			return []string{id(p.ID), id(p.TournamentID), positions, id(p.RewardTypeID), models.Truncate(p.RewardAmount.String())}
		})
		if err != nil {
			return err
		}
	case "users":
		page, err := c.client.Users.List(ctx, c.page)
		t, err = tableOf(page, err, []string{"ID", "WALLET", "NICKNAME", "DAYS", "ACTIVE"}, func(u models.User) []string {
			wallet := u.WalletShort
			if wallet == "" {
				wallet = models.Truncate(u.WalletAddress)
			}
			return []string{id(u.ID), wallet, u.Nickname, strconv.Itoa(u.DaysSinceRegistration), yesNo(u.IsActive)}
		})
		if err != nil {
			return err
		}
	default:
		return apperrors.NewInvalidParameterError("resource", fmt.Sprintf("unknown resource %q", resource))
	}

	c.print(t)
	return nil
}

func (c *cli) activeFilter() (*bool, error) {
	if c.filters.activeOnly == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(c.filters.activeOnly)
	if err != nil {
		return nil, apperrors.NewInvalidParameterError("active-only", "must be true or false")
	}
	return &v, nil
}

func (c *cli) print(t *table) {
	if len(t.rows) == 0 {
		fmt.Fprintln(c.out, "No records found.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()

	footer := fmt.Sprintf("Showing %d-%d of %d", t.skip+1, t.skip+len(t.rows), t.total)
	if t.more {
		footer += fmt.Sprintf(" (next: -skip %d)", t.skip+len(t.rows))
	}
	color.New(color.Faint).Fprintln(c.out, footer)
}

func parseID(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, apperrors.NewInvalidParameterError("id", "must be a positive whole number")
	}
	return v, nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
