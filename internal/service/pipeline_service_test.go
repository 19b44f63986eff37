package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/pkg/errors"
)

func (f *fixture) newProduct(t *testing.T) *repository.Product {
	t.Helper()
	p, err := f.pipeline.Create(context.Background(), &CreateProductRequest{
		Name:       "Vitamin C Serum",
		Category:   "skincare",
		Priority:   repository.PriorityHigh,
		CreatedBy:  f.partner.ID,
		AssignedTo: []string{f.partner.ID, f.admin.ID, f.partner.ID},
	})
	require.NoError(t, err)
	return p
}

func assertOneOpenEntry(t *testing.T, history []*repository.StageHistoryEntry) {
	t.Helper()
	open := 0
	for _, e := range history {
		if e.ExitedAt == nil {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestPipelineService_Create(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t)

	assert.Equal(t, StageIdea, p.Stage)
	assert.Zero(t, p.Progress)
	assert.Equal(t, []string{f.partner.ID, f.admin.ID}, p.AssignedTo)

	history, err := f.pipeline.History(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, StageIdea, history[0].Stage)
	assert.Nil(t, history[0].ExitedAt)
	assert.Equal(t, f.partner.ID, history[0].MovedBy)
}

func TestPipelineService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Create(context.Background(), &CreateProductRequest{Name: " ", CreatedBy: f.partner.ID})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	_, err = f.pipeline.Create(context.Background(), &CreateProductRequest{Name: "Balm", Priority: "urgent", CreatedBy: f.partner.ID})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestPipelineService_AdvanceWalksTheStageOrder(t *testing.T) {
	for n := 1; n < len(Stages); n++ {
		f := newFixture(t)
		p := f.newProduct(t)

		var err error
		for i := 0; i < n; i++ {
			p, err = f.pipeline.Advance(context.Background(), p.ID, f.partner.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, Stages[n], p.Stage, "after %d advances", n)
	}
}

func TestPipelineService_AdvanceHistoryIsContiguous(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)

	for i := 0; i < len(Stages)-1; i++ {
		_, err := f.pipeline.Advance(ctx, p.ID, f.admin.ID)
		require.NoError(t, err)

		history, err := f.pipeline.History(ctx, p.ID)
		require.NoError(t, err)
		assertOneOpenEntry(t, history)
	}

	history, err := f.pipeline.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, len(Stages))

	for i, e := range history {
		assert.Equal(t, Stages[i], e.Stage)
		if i > 0 {
			require.NotNil(t, history[i-1].ExitedAt)
			assert.Equal(t, *history[i-1].ExitedAt, e.EnteredAt)
			assert.Equal(t, f.admin.ID, e.MovedBy)
		}
	}
}

func TestPipelineService_ThreeAdvancesReachTesting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)

	for i := 0; i < 3; i++ {
		var err error
		p, err = f.pipeline.Advance(ctx, p.ID, f.partner.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, StageTesting, p.Stage)

	history, err := f.pipeline.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.NotNil(t, history[1].ExitedAt)
	assert.NotNil(t, history[2].ExitedAt)
	assert.Nil(t, history[3].ExitedAt)
	assert.Equal(t, p.StageEnteredAt, history[3].EnteredAt)
}

func TestPipelineService_AdvancePastLaunchFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)

	for i := 0; i < len(Stages)-1; i++ {
		var err error
		p, err = f.pipeline.Advance(ctx, p.ID, f.partner.ID)
		require.NoError(t, err)
	}
	require.Equal(t, StageLaunched, p.Stage)
	assert.Equal(t, 100, p.Progress)

	before, err := f.pipeline.History(ctx, p.ID)
	require.NoError(t, err)

	_, err = f.pipeline.Advance(ctx, p.ID, f.partner.ID)
	assert.True(t, stderrors.Is(err, ErrAlreadyTerminal))
	assert.Equal(t, errors.ErrCodeInvalidState, errors.CodeOf(err))

	after, err := f.pipeline.History(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPipelineService_AdvanceLeavesProgressUntilLaunch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)

	progress := 40
	_, err := f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.admin.ID, Progress: &progress})
	require.NoError(t, err)

	p, err = f.pipeline.Advance(ctx, p.ID, f.partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Progress)
}

func TestPipelineService_AdvanceNotifiesTeam(t *testing.T) {
	f := newFixture(t)
	p := f.newProduct(t)

	_, err := f.pipeline.Advance(context.Background(), p.ID, f.partner.ID)
	require.NoError(t, err)

	sent := f.notifier.events("product_advanced")
	require.Len(t, sent, 1)
	assert.Equal(t, []string{f.admin.ID}, sent[0].Recipients)
}

func TestPipelineService_AdvanceUnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.pipeline.Advance(context.Background(), "missing", f.partner.ID)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
}

func TestPipelineService_Override(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)

	stage := StagePrinting
	_, err := f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.partner.ID, Stage: &stage})
	assert.Equal(t, errors.ErrCodeForbidden, errors.CodeOf(err))

	bad := "shipping"
	_, err = f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.admin.ID, Stage: &bad})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	over := 101
	_, err = f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.admin.ID, Progress: &over})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	_, err = f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.admin.ID})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))

	updated, err := f.pipeline.Override(ctx, &OverrideProductRequest{ProductID: p.ID, ActingUserID: f.admin.ID, Stage: &stage})
	require.NoError(t, err)
	assert.Equal(t, StagePrinting, updated.Stage)

	history, err := f.pipeline.History(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, StageIdea, history[0].Stage)

	kind := repository.TableProducts
	entries, err := f.activity.List(ctx, repository.ActivityFilter{ResourceType: &kind, ResourceID: &p.ID})
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "product_overridden", entries[0].Action)
}

func TestPipelineService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.newProduct(t)
	_, err := f.pipeline.Create(ctx, &CreateProductRequest{Name: "Toner", Priority: repository.PriorityLow, CreatedBy: f.admin.ID})
	require.NoError(t, err)

	list, total, err := f.pipeline.List(ctx, repository.ProductFilter{AssignedTo: &f.admin.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, p.ID, list[0].ID)

	bad := "shipping"
	_, _, err = f.pipeline.List(ctx, repository.ProductFilter{Stage: &bad})
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestStageHelpers(t *testing.T) {
	next, ok := NextStage(StageIdea)
	assert.True(t, ok)
	assert.Equal(t, StageResearch, next)

	_, ok = NextStage(StageLaunched)
	assert.False(t, ok)
	_, ok = NextStage("unknown")
	assert.False(t, ok)

	assert.True(t, LaunchConfirmationRequired(StageReady))
	assert.False(t, LaunchConfirmationRequired(StageProduction))
	assert.False(t, LaunchConfirmationRequired(StageLaunched))
	assert.True(t, IsTerminal(StageLaunched))
}
