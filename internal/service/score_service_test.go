package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"unoserver/internal/game"
	"unoserver/internal/model"
)

type fakeResultRepo struct {
	results []*model.GameResult
	err     error
}

func (r *fakeResultRepo) Create(_ context.Context, result *model.GameResult) error {
	if r.err != nil {
		return r.err
	}
	r.results = append(r.results, result)
	return nil
}

func (r *fakeResultRepo) GetByGameID(_ context.Context, gameID string) (*model.GameResult, error) {
	for _, res := range r.results {
		if res.GameID == gameID {
			return res, nil
		}
	}
	return nil, nil
}

func (r *fakeResultRepo) ListByPlayer(_ context.Context, player string, limit int) ([]*model.GameResult, error) {
	var out []*model.GameResult
	for i := len(r.results) - 1; i >= 0 && len(out) < limit; i-- {
		for _, p := range r.results[i].Players {
			if p == player {
				out = append(out, r.results[i])
				break
			}
		}
	}
	return out, nil
}

func (r *fakeResultRepo) EnsureIndexes(context.Context) error { return nil }

func (r *fakeResultRepo) Leaderboard(_ context.Context, since time.Time, limit int) ([]model.LeaderboardEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	byPlayer := map[string]*model.LeaderboardEntry{}
	for _, res := range r.results {
		if res.FinishedAt.Before(since) {
			continue
		}
		e, ok := byPlayer[res.Winner]
		if !ok {
			e = &model.LeaderboardEntry{Player: res.Winner}
			byPlayer[res.Winner] = e
		}
		e.Points += res.Points
		e.Wins++
	}
	out := []model.LeaderboardEntry{}
	for _, e := range byPlayer {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Player < out[j].Player
	})
	out = out[:min(limit, len(out))]
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

type fakeLeaderboard struct {
	points map[string]int
	wins   map[string]int
}

func newFakeLeaderboard() *fakeLeaderboard {
	return &fakeLeaderboard{points: map[string]int{}, wins: map[string]int{}}
}

func (l *fakeLeaderboard) AddWin(_ context.Context, player string, points int) error {
	l.points[player] += points
	l.wins[player]++
	return nil
}

func (l *fakeLeaderboard) GetTop(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	var out []model.LeaderboardEntry
	for p, pts := range l.points {
		out = append(out, model.LeaderboardEntry{Player: p, Points: pts, Wins: l.wins[p]})
	}
	return out[:min(limit, len(out))], nil
}

func (l *fakeLeaderboard) GetRank(_ context.Context, player string) (int64, error) {
	if _, ok := l.points[player]; !ok {
		return -1, nil
	}
	return 1, nil
}

func TestRecordResult(t *testing.T) {
	ctx := context.Background()
	repo := &fakeResultRepo{}
	lb := newFakeLeaderboard()
	svc := NewScoreService(repo, lb)

	for _, r := range []*model.GameResult{
		{GameID: "g1", Winner: "Alice", Players: []string{"Alice", "Bob"}, Points: 30},
		{GameID: "g2", Winner: "Alice", Players: []string{"Alice", "Carol"}, Points: 12},
		{GameID: "g3", Winner: "Bob", Players: []string{"Alice", "Bob"}, Points: 7},
	} {
		if err := svc.RecordResult(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	if lb.points["Alice"] != 42 || lb.wins["Alice"] != 2 || lb.wins["Bob"] != 1 {
		t.Errorf("leaderboard = %v / %v", lb.points, lb.wins)
	}

	history, err := svc.GetHistory(ctx, "Bob", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 || history[0].GameID != "g3" {
		t.Errorf("history = %+v", history)
	}

	res, err := svc.GetResult(ctx, "g2")
	if err != nil || res == nil || res.Winner != "Alice" {
		t.Errorf("GetResult = %+v, %v", res, err)
	}
	if rank, _ := svc.GetRank(ctx, "Dave"); rank != -1 {
		t.Errorf("rank of unknown player = %d", rank)
	}
}

func TestRecordResultStoreFailure(t *testing.T) {
	boom := errors.New("mongo down")
	lb := newFakeLeaderboard()
	svc := NewScoreService(&fakeResultRepo{err: boom}, lb)

	err := svc.RecordResult(context.Background(), &model.GameResult{GameID: "g1", Winner: "Alice", Points: 5})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(lb.points) != 0 {
		t.Error("leaderboard credited after a failed save")
	}
}

func TestLeaderboardPeriods(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	repo := &fakeResultRepo{results: []*model.GameResult{
		{GameID: "g1", Winner: "Alice", Points: 40, FinishedAt: now.Add(-60 * 24 * time.Hour)},
		{GameID: "g2", Winner: "Bob", Points: 25, FinishedAt: now.Add(-10 * 24 * time.Hour)},
		{GameID: "g3", Winner: "Carol", Points: 9, FinishedAt: now.Add(-2 * 24 * time.Hour)},
		{GameID: "g4", Winner: "Carol", Points: 3, FinishedAt: now.Add(-time.Hour)},
	}}
	lb := newFakeLeaderboard()
	lb.points["Alice"], lb.wins["Alice"] = 40, 1
	svc := NewScoreService(repo, lb)

	week, err := svc.GetLeaderboard(ctx, PeriodWeek, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(week) != 1 || week[0].Player != "Carol" || week[0].Points != 12 || week[0].Wins != 2 || week[0].Rank != 1 {
		t.Errorf("week = %+v", week)
	}

	month, err := svc.GetLeaderboard(ctx, PeriodMonth, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(month) != 2 || month[0].Player != "Bob" || month[1].Player != "Carol" || month[1].Rank != 2 {
		t.Errorf("month = %+v", month)
	}

	for _, period := range []string{"", PeriodAll} {
		all, err := svc.GetLeaderboard(ctx, period, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 1 || all[0].Player != "Alice" {
			t.Errorf("period %q = %+v, want the all-time board", period, all)
		}
	}

	if _, err := svc.GetLeaderboard(ctx, "decade", 10); !errors.Is(err, game.ErrInvalidInput) {
		t.Errorf("unknown period: err = %v", err)
	}
}
