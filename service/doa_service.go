package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"zakat-tracker/domain"
	"zakat-tracker/format"
	"zakat-tracker/metrics"
	"zakat-tracker/repository"
)

type DoaService struct {
	doas   repository.DoaRepository
	users  repository.UserRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewDoaService(
	doas repository.DoaRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *DoaService {
	return &DoaService{
		doas:   doas,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// Feed returns the doas visible to the viewer, newest first.
func (s *DoaService) Feed(
	ctx context.Context,
	viewerID string,
	filter domain.DoaFilter,
) ([]domain.DoaView, error) {
	tab := strings.ToLower(strings.TrimSpace(filter.Tab))
	if tab == "" {
		tab = domain.FeedTabAll
	}
	if tab != domain.FeedTabAll && tab != domain.FeedTabFollowing {
		return nil, domain.NewValidationError("tab", "tab must be all or following")
	}

	viewer, err := s.users.Get(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authors, err := s.userIndex(ctx)
	if err != nil {
		return nil, err
	}
	doas, err := s.doas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doas: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	now := s.now()
	out := []domain.DoaView{}
	for _, d := range doas {
		author := authors[d.UserID]
		if !canView(d, author, viewer.ID) {
			continue
		}
		if tab == domain.FeedTabFollowing && !viewer.Follows(d.UserID) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(d.Text), query) &&
			!strings.Contains(strings.ToLower(author.Name), query) {
			continue
		}
		out = append(out, view(d, author, viewer.ID, now))
	}
	return out, nil
}

// Create publishes a new doa for the author.
func (s *DoaService) Create(
	ctx context.Context,
	authorID string,
	input domain.DoaInput,
) (domain.DoaView, error) {
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return domain.DoaView{}, err
	}

	text, visibility, err := validateDoaInput(input)
	if err != nil {
		return domain.DoaView{}, err
	}
	background, err := s.templateBackground(ctx, input.TemplateID)
	if err != nil {
		return domain.DoaView{}, err
	}

	now := s.now()
	doa := domain.Doa{
		ID:                 uuid.NewString(),
		UserID:             author.ID,
		Text:               text,
		Visibility:         visibility,
		TemplateID:         input.TemplateID,
		TemplateBackground: background,
		AmeenBy:            map[string]bool{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.doas.Create(ctx, doa); err != nil {
		return domain.DoaView{}, fmt.Errorf("create doa: %w", err)
	}

	metrics.IncDoaAction("create")
	s.logger.Info("doa created", zap.String("doa_id", doa.ID), zap.String("user_id", author.ID))
	return view(doa, author, author.ID, now), nil
}

// Update replaces the text, visibility and template of the author's own doa.
func (s *DoaService) Update(
	ctx context.Context,
	authorID string,
	doaID string,
	input domain.DoaInput,
) (domain.DoaView, error) {
	author, err := s.users.Get(ctx, authorID)
	if err != nil {
		return domain.DoaView{}, err
	}
	text, visibility, err := validateDoaInput(input)
	if err != nil {
		return domain.DoaView{}, err
	}
	background, err := s.templateBackground(ctx, input.TemplateID)
	if err != nil {
		return domain.DoaView{}, err
	}

	now := s.now()
	updated, err := s.doas.Update(ctx, doaID, func(d *domain.Doa) error {
		if d.UserID != author.ID {
			return fmt.Errorf("doa %s belongs to another user: %w", doaID, domain.ErrForbidden)
		}
		d.Text = text
		d.Visibility = visibility
		d.TemplateID = input.TemplateID
		d.TemplateBackground = background
		d.UpdatedAt = now
		return nil
	})
	if err != nil {
		return domain.DoaView{}, err
	}

	metrics.IncDoaAction("update")
	return view(updated, author, author.ID, now), nil
}

// Delete removes the author's own doa.
func (s *DoaService) Delete(ctx context.Context, authorID, doaID string) error {
	d, err := s.doas.Get(ctx, doaID)
	if err != nil {
		return err
	}
	if d.UserID != authorID {
		return fmt.Errorf("doa %s belongs to another user: %w", doaID, domain.ErrForbidden)
	}
	if err := s.doas.Delete(ctx, doaID); err != nil {
		return err
	}

	metrics.IncDoaAction("delete")
	s.logger.Info("doa deleted", zap.String("doa_id", doaID), zap.String("user_id", authorID))
	return nil
}

// ToggleAmeen flips the user's ameen on a doa and adjusts the count.
func (s *DoaService) ToggleAmeen(ctx context.Context, userID, doaID string) (domain.DoaView, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.DoaView{}, err
	}
	if err := s.ensureVisible(ctx, user.ID, doaID); err != nil {
		return domain.DoaView{}, err
	}

	updated, err := s.doas.Update(ctx, doaID, func(d *domain.Doa) error {
		if d.AmeenBy[user.ID] {
			delete(d.AmeenBy, user.ID)
			if d.AmeenCount > 0 {
				d.AmeenCount--
			}
			return nil
		}
		d.AmeenBy[user.ID] = true
		d.AmeenCount++
		return nil
	})
	if err != nil {
		return domain.DoaView{}, err
	}

	author, err := s.users.Get(ctx, updated.UserID)
	if err != nil {
		return domain.DoaView{}, err
	}
	metrics.IncDoaAction("ameen")
	return view(updated, author, user.ID, s.now()), nil
}

// Share builds the text a user copies to another app.
func (s *DoaService) Share(ctx context.Context, viewerID, doaID string) (domain.ShareContent, error) {
	if err := s.ensureVisible(ctx, viewerID, doaID); err != nil {
		return domain.ShareContent{}, err
	}
	d, err := s.doas.Get(ctx, doaID)
	if err != nil {
		return domain.ShareContent{}, err
	}
	author, err := s.users.Get(ctx, d.UserID)
	if err != nil {
		return domain.ShareContent{}, err
	}

	metrics.IncDoaAction("share")
	return domain.ShareContent{
		DoaID: d.ID,
		Text:  fmt.Sprintf("\"%s\" - %s", d.Text, author.Name),
	}, nil
}

// Report flags a doa for moderation. Each user can report a doa once.
func (s *DoaService) Report(
	ctx context.Context,
	reporterID string,
	doaID string,
	reason string,
) (domain.Report, error) {
	reporter, err := s.users.Get(ctx, reporterID)
	if err != nil {
		return domain.Report{}, err
	}
	if err := s.ensureVisible(ctx, reporter.ID, doaID); err != nil {
		return domain.Report{}, err
	}

	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > MaxReportReason {
		return domain.Report{}, domain.NewValidationError("reason",
			fmt.Sprintf("reason exceeds %d characters", MaxReportReason))
	}

	existing, err := s.doas.Reports(ctx, doaID)
	if err != nil {
		return domain.Report{}, fmt.Errorf("list reports: %w", err)
	}
	for _, r := range existing {
		if r.ReporterID == reporter.ID {
			return domain.Report{}, domain.NewValidationError("doa_id", "doa already reported by this user")
		}
	}

	report := domain.Report{
		ID:         uuid.NewString(),
		DoaID:      doaID,
		ReporterID: reporter.ID,
		Reason:     reason,
		CreatedAt:  s.now(),
	}
	if err := s.doas.AddReport(ctx, report); err != nil {
		return domain.Report{}, err
	}

	metrics.IncDoaAction("report")
	s.logger.Warn("doa reported",
		zap.String("doa_id", doaID),
		zap.String("reporter_id", reporter.ID),
		zap.Int("reports", len(existing)+1))
	return report, nil
}

// MyDoas lists the user's own doas, separating those saved from a template.
func (s *DoaService) MyDoas(ctx context.Context, userID string) (domain.MyDoas, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return domain.MyDoas{}, err
	}
	doas, err := s.doas.List(ctx)
	if err != nil {
		return domain.MyDoas{}, fmt.Errorf("list doas: %w", err)
	}

	now := s.now()
	out := domain.MyDoas{Regular: []domain.DoaView{}, Templates: []domain.DoaView{}}
	for _, d := range doas {
		if d.UserID != user.ID {
			continue
		}
		v := view(d, user, user.ID, now)
		if d.TemplateID != "" {
			out.Templates = append(out.Templates, v)
		} else {
			out.Regular = append(out.Regular, v)
		}
	}
	return out, nil
}

func (s *DoaService) Templates(ctx context.Context) ([]domain.Template, error) {
	return s.doas.Templates(ctx)
}

func (s *DoaService) userIndex(ctx context.Context) (map[string]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	index := make(map[string]domain.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return index, nil
}

// ensureVisible hides doas the viewer may not see behind ErrNotFound.
func (s *DoaService) ensureVisible(ctx context.Context, viewerID, doaID string) error {
	d, err := s.doas.Get(ctx, doaID)
	if err != nil {
		return err
	}
	author, err := s.users.Get(ctx, d.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if !canView(d, author, viewerID) {
		return fmt.Errorf("doa %s: %w", doaID, domain.ErrNotFound)
	}
	return nil
}

func (s *DoaService) templateBackground(ctx context.Context, templateID string) (string, error) {
	if templateID == "" {
		return "", nil
	}
	templates, err := s.doas.Templates(ctx)
	if err != nil {
		return "", fmt.Errorf("list templates: %w", err)
	}
	for _, t := range templates {
		if t.ID == templateID {
			return t.Background, nil
		}
	}
	return "", domain.NewValidationError("template_id", "unknown template")
}

func validateDoaInput(input domain.DoaInput) (string, string, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return "", "", domain.NewValidationError("text", "doa text is required")
	}
	if utf8.RuneCountInString(text) > MaxDoaLength {
		return "", "", domain.NewValidationError("text",
			fmt.Sprintf("doa text exceeds %d characters", MaxDoaLength))
	}

	visibility := strings.ToLower(strings.TrimSpace(input.Visibility))
	switch visibility {
	case "":
		visibility = domain.VisibilityPublic
	case domain.VisibilityPublic, domain.VisibilityFriends, domain.VisibilityPrivate:
	default:
		return "", "", domain.NewValidationError("visibility", "visibility must be public, friends or private")
	}
	return text, visibility, nil
}

func canView(d domain.Doa, author domain.User, viewerID string) bool {
	if d.UserID == viewerID {
		return true
	}
	switch d.Visibility {
	case domain.VisibilityPrivate:
		return false
	case domain.VisibilityFriends:
		return author.Follows(viewerID)
	default:
		return true
	}
}

func view(d domain.Doa, author domain.User, viewerID string, now time.Time) domain.DoaView {
	return domain.DoaView{
		Doa:       d,
		Author:    author,
		IsAmeen:   d.AmeenBy[viewerID],
		PostedAgo: format.RelativeTime(d.CreatedAt, now),
	}
}
