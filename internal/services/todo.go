package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sbilibin2017/todo-api/internal/apperrors"
	"github.com/sbilibin2017/todo-api/internal/models"
)

//go:generate mockgen -source=todo.go -destination=todo_mock.go -package=services

var (
	ErrTitleRequired = apperrors.New(apperrors.KindValidation, "Title is required")
	ErrTodoNotFound  = apperrors.New(apperrors.KindNotFound, "Todo not found")
)

// TodoReader reads items of one owner.
type TodoReader interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Todo, error)
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.Todo, error)
}

// TodoWriter mutates items of one owner.
type TodoWriter interface {
	Save(ctx context.Context, userID uuid.UUID, title string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TodoService implements the item operations. Every operation is scoped by
// the caller's user id, and mutations first look the item up by id and owner.
type TodoService struct {
	reader    TodoReader
	writer    TodoWriter
	publisher EventPublisher
}

// NewTodoService creates a new TodoService. publisher may be nil.
func NewTodoService(reader TodoReader, writer TodoWriter, publisher EventPublisher) *TodoService {
	return &TodoService{reader: reader, writer: writer, publisher: publisher}
}

// Create stores a new item owned by userID.
func (s *TodoService) Create(ctx context.Context, userID uuid.UUID, title string) (*models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo, err := s.writer.Save(ctx, userID, title)
	if err != nil {
		return nil, errors.Wrap(err, "save todo")
	}

	s.publish(ctx, models.NewEvent(models.EventTodoCreated, userID, todo.ID))
	return todo, nil
}

// List returns the items of userID, newest first.
func (s *TodoService) List(ctx context.Context, userID uuid.UUID) ([]models.Todo, error) {
	todos, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list todos")
	}
	return todos, nil
}

// Update applies patch to the item id of userID.
func (s *TodoService) Update(ctx context.Context, userID, id uuid.UUID, patch models.TodoPatch) (*models.Todo, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		patch.Title = &title
	}

	todo, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(todo)

	updated, err := s.save(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.NewEvent(models.EventTodoUpdated, userID, id))
	return updated, nil
}

// Delete removes the item id of userID.
func (s *TodoService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.writer.Delete(ctx, id, userID); err != nil {
		return errors.Wrap(err, "delete todo")
	}

	s.publish(ctx, models.NewEvent(models.EventTodoDeleted, userID, id))
	return nil
}

// Toggle flips the completion flag of the item id of userID.
func (s *TodoService) Toggle(ctx context.Context, userID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Completed = !todo.Completed

	updated, err := s.save(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, models.NewEvent(models.EventTodoToggled, userID, id))
	return updated, nil
}

// owned returns the item id if userID owns it and ErrTodoNotFound otherwise.
func (s *TodoService) owned(ctx context.Context, userID, id uuid.UUID) (*models.Todo, error) {
	todo, err := s.reader.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get todo")
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

func (s *TodoService) save(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	updated, err := s.writer.Update(ctx, todo)
	if errors.Is(err, sql.ErrNoRows) {
		// removed between lookup and update
		return nil, ErrTodoNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "update todo")
	}
	return updated, nil
}

func (s *TodoService) publish(ctx context.Context, event models.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, event)
	}
}
