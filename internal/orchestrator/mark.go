package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/compozy/tagmyrebase/internal/domain"
	"github.com/compozy/tagmyrebase/internal/repository"
	"github.com/compozy/tagmyrebase/internal/usecase"
	"go.uber.org/zap"
)

// MarkConfig contains configuration for a mark run.
type MarkConfig struct {
	TagUpstream domain.Template
	TagHead     domain.Template
	BranchHead  domain.Template
	// Now is captured once per run; every expansion uses it.
	Now    time.Time
	DryRun bool
}

// HasActions reports whether at least one action was requested.
func (c MarkConfig) HasActions() bool {
	return c.TagUpstream != "" || c.TagHead != "" || c.BranchHead != ""
}

// MarkOrchestrator tags the upstream commit, tags HEAD and branches HEAD.
type MarkOrchestrator struct {
	gitRepo   repository.GitRepository
	describer *usecase.DescribeCommitUseCase
	logger    *zap.Logger
}

// NewMarkOrchestrator creates a new mark orchestrator.
func NewMarkOrchestrator(gitRepo repository.GitRepository, logger *zap.Logger) *MarkOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkOrchestrator{
		gitRepo:   gitRepo,
		describer: usecase.NewDescribeCommitUseCase(gitRepo),
		logger:    logger,
	}
}

// markAction describes one of the three marking actions.
type markAction struct {
	action   domain.Action
	template domain.Template
	target   string
	existing func(snapshot *domain.RefSnapshot, commit string) []string
	create   func(ctx context.Context, name string) error
	record   func(snapshot *domain.RefSnapshot, name, commit string) *domain.RefSnapshot
	created  string
	planned  string
	already  string
}

// Execute runs the requested actions in order upstream, HEAD tag, HEAD branch.
// emit receives each row as soon as its action finished, so rows of earlier
// actions survive a failure in a later one.
func (o *MarkOrchestrator) Execute(ctx context.Context, cfg MarkConfig, emit func(domain.ResultRow)) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultRunTimeout)
	defer cancel()
	snapshot, err := (&usecase.ReadRefsUseCase{GitRepo: o.gitRepo}).Execute(ctx)
	if err != nil {
		return err
	}
	o.logger.Debug("read refs",
		zap.Int("tags", snapshot.TagCount()),
		zap.Int("branches", snapshot.BranchCount()),
		zap.String("head", snapshot.Head()),
	)
	var actions []markAction
	if cfg.TagUpstream != "" {
		branch, upstream, err := (&usecase.ResolveUpstreamUseCase{GitRepo: o.gitRepo}).Execute(ctx)
		if err != nil {
			return err
		}
		o.logger.Debug("resolved upstream", zap.String("branch", branch), zap.String("commit", upstream))
		actions = append(actions, o.tagUpstreamAction(cfg.TagUpstream, upstream))
	}
	if cfg.TagHead != "" || cfg.BranchHead != "" {
		if snapshot.Head() == "" {
			return domain.ErrNoHead
		}
	}
	if cfg.TagHead != "" {
		actions = append(actions, o.tagHeadAction(cfg.TagHead, snapshot.Head()))
	}
	if cfg.BranchHead != "" {
		actions = append(actions, o.branchHeadAction(cfg.BranchHead, snapshot.Head()))
	}
	for _, action := range actions {
		row, next, err := o.mark(ctx, snapshot, action, cfg)
		if err != nil {
			return fmt.Errorf("%s failed: %w", action.action, err)
		}
		snapshot = next
		emit(row)
	}
	return nil
}

func (o *MarkOrchestrator) tagUpstreamAction(template domain.Template, upstream string) markAction {
	return markAction{
		action:   domain.ActionTagUpstream,
		template: template,
		target:   upstream,
		existing: (*domain.RefSnapshot).TagsAt,
		create: func(ctx context.Context, name string) error {
			return o.gitRepo.CreateTag(ctx, name, upstream)
		},
		record:  (*domain.RefSnapshot).WithTag,
		created: "Tagged upstream",
		planned: "Would tag upstream",
		already: "Upstream already tagged",
	}
}

func (o *MarkOrchestrator) tagHeadAction(template domain.Template, head string) markAction {
	return markAction{
		action:   domain.ActionTagHead,
		template: template,
		target:   head,
		existing: (*domain.RefSnapshot).TagsAt,
		create:   o.gitRepo.CreateTagAtHead,
		record:   (*domain.RefSnapshot).WithTag,
		created:  "Tagged HEAD",
		planned:  "Would tag HEAD",
		already:  "HEAD already tagged",
	}
}

func (o *MarkOrchestrator) branchHeadAction(template domain.Template, head string) markAction {
	return markAction{
		action:   domain.ActionBranchHead,
		template: template,
		target:   head,
		existing: (*domain.RefSnapshot).BranchesAt,
		create:   o.gitRepo.ForceBranch,
		record:   (*domain.RefSnapshot).WithBranch,
		created:  "Branched HEAD",
		planned:  "Would branch HEAD",
		already:  "HEAD already branched",
	}
}

// mark performs one action unless an equivalent marker already exists at the
// target commit, and returns its row plus the snapshot later actions see.
func (o *MarkOrchestrator) mark(
	ctx context.Context,
	snapshot *domain.RefSnapshot,
	a markAction,
	cfg MarkConfig,
) (domain.ResultRow, *domain.RefSnapshot, error) {
	if name, ok := a.template.FirstMatch(a.existing(snapshot, a.target)); ok {
		o.logger.Debug("already marked", zap.String("action", string(a.action)), zap.String("name", name))
		description, err := o.describer.Execute(ctx, a.target)
		if err != nil {
			return domain.ResultRow{}, nil, err
		}
		return domain.ResultRow{Status: a.already + " " + name, Description: description}, snapshot, nil
	}
	name, err := a.template.Expand(cfg.Now, snapshot)
	if err != nil {
		return domain.ResultRow{}, nil, err
	}
	if err := ValidateRefName(name); err != nil {
		return domain.ResultRow{}, nil, err
	}
	status := a.planned
	if !cfg.DryRun {
		if err := a.create(ctx, name); err != nil {
			return domain.ResultRow{}, nil, err
		}
		status = a.created
	}
	o.logger.Debug("marked",
		zap.String("action", string(a.action)),
		zap.String("name", name),
		zap.String("commit", a.target),
		zap.Bool("dry_run", cfg.DryRun),
	)
	description, err := o.describer.Execute(ctx, a.target)
	if err != nil {
		return domain.ResultRow{}, nil, err
	}
	row := domain.ResultRow{Status: status + " " + name, Arrow: domain.Arrow, Description: description}
	return row, a.record(snapshot, name, a.target), nil
}
