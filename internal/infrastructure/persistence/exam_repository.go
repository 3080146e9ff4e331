package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tsvs/backend/internal/domain/exam"
	"github.com/tsvs/backend/internal/infrastructure/persistence/models"
)

// GormCategoryRepository implements exam.CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) Create(ctx context.Context, c *exam.Category) error {
	return translate(r.db.WithContext(ctx).Create(models.CategoryModelFromDomain(c)).Error)
}

func (r *GormCategoryRepository) Update(ctx context.Context, c *exam.Category) error {
	return affected(r.db.WithContext(ctx).Model(&models.CategoryModel{}).Where("id = ?", c.ID).
		Updates(map[string]any{"title": c.Title, "version": c.Version, "updated_at": c.UpdatedAt}))
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteUnreferenced(ctx, r.db, &models.CategoryModel{}, &models.QuestionModel{}, "category_id", id)
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.Category, error) {
	var model models.CategoryModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*exam.Category, error) {
	var rows []models.CategoryModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*exam.Category, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormCategoryRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	return existsByColumn(ctx, r.db, &models.CategoryModel{}, "title", title, excludeID)
}

// GormTypeSelectionRepository implements exam.TypeSelectionRepository
type GormTypeSelectionRepository struct {
	db *gorm.DB
}

// NewGormTypeSelectionRepository creates a new GormTypeSelectionRepository
func NewGormTypeSelectionRepository(db *gorm.DB) *GormTypeSelectionRepository {
	return &GormTypeSelectionRepository{db: db}
}

func (r *GormTypeSelectionRepository) Create(ctx context.Context, t *exam.TypeSelection) error {
	return translate(r.db.WithContext(ctx).Create(models.TypeSelectionModelFromDomain(t)).Error)
}

func (r *GormTypeSelectionRepository) Update(ctx context.Context, t *exam.TypeSelection) error {
	return affected(r.db.WithContext(ctx).Model(&models.TypeSelectionModel{}).Where("id = ?", t.ID).
		Updates(map[string]any{"title": t.Title, "version": t.Version, "updated_at": t.UpdatedAt}))
}

func (r *GormTypeSelectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteUnreferenced(ctx, r.db, &models.TypeSelectionModel{}, &models.QuestionModel{}, "type_selection_id", id)
}

func (r *GormTypeSelectionRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.TypeSelection, error) {
	var model models.TypeSelectionModel
	if err := r.db.WithContext(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

func (r *GormTypeSelectionRepository) FindAll(ctx context.Context) ([]*exam.TypeSelection, error) {
	var rows []models.TypeSelectionModel
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*exam.TypeSelection, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormTypeSelectionRepository) ExistsByTitle(ctx context.Context, title string, excludeID uuid.UUID) (bool, error) {
	return existsByColumn(ctx, r.db, &models.TypeSelectionModel{}, "title", title, excludeID)
}

// GormQuestionRepository implements exam.QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewGormQuestionRepository creates a new GormQuestionRepository
func NewGormQuestionRepository(db *gorm.DB) *GormQuestionRepository {
	return &GormQuestionRepository{db: db}
}

// Create inserts the question and its answers in one transaction
func (r *GormQuestionRepository) Create(ctx context.Context, q *exam.Question) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(models.QuestionModelFromDomain(q)).Error; err != nil {
			return err
		}
		return createAnswers(tx, q.Answers)
	}))
}

// Save writes the scalar fields and applies the answer diff in one transaction
func (r *GormQuestionRepository) Save(ctx context.Context, q *exam.Question, diff exam.AnswerDiff) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QuestionModel{}).Where("id = ?", q.ID).Updates(map[string]any{
			"title":             q.Title,
			"category_id":       q.CategoryID,
			"type_selection_id": q.TypeSelectionID,
			"version":           q.Version,
			"updated_at":        q.UpdatedAt,
		})
		if err := affected(result); err != nil {
			return err
		}

		if len(diff.Removed) > 0 {
			ids := make([]uuid.UUID, len(diff.Removed))
			for i, a := range diff.Removed {
				ids[i] = a.ID
			}
			if err := tx.Where("question_id = ? AND id IN ?", q.ID, ids).Delete(&models.AnswerModel{}).Error; err != nil {
				return err
			}
		}
		for _, a := range diff.Updated {
			if err := updateAnswer(tx, a); err != nil {
				return err
			}
		}
		return createAnswers(tx, diff.Added)
	}))
}

// Delete removes the question together with its answers
func (r *GormQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&models.AnswerModel{}).Error; err != nil {
			return err
		}
		return affected(tx.Delete(&models.QuestionModel{}, "id = ?", id))
	}))
}

// FindByID loads a question with its answers
func (r *GormQuestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*exam.Question, error) {
	var model models.QuestionModel
	if err := r.withAnswers(ctx).Take(&model, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindByIDs loads the questions that exist among ids
func (r *GormQuestionRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*exam.Question, error) {
	if len(ids) == 0 {
		return []*exam.Question{}, nil
	}
	var rows []models.QuestionModel
	if err := r.withAnswers(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return questionsToDomain(rows), nil
}

// FindAll returns questions with answers, oldest first
func (r *GormQuestionRepository) FindAll(ctx context.Context, filter exam.QuestionFilter) ([]*exam.Question, error) {
	query := r.withAnswers(ctx)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.TypeSelectionID != nil {
		query = query.Where("type_selection_id = ?", *filter.TypeSelectionID)
	}

	var rows []models.QuestionModel
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return questionsToDomain(rows), nil
}

// CreateAnswer inserts a single answer
func (r *GormQuestionRepository) CreateAnswer(ctx context.Context, a *exam.Answer) error {
	return translate(r.db.WithContext(ctx).Create(models.AnswerModelFromDomain(a)).Error)
}

// UpdateAnswer updates a single answer
func (r *GormQuestionRepository) UpdateAnswer(ctx context.Context, a *exam.Answer) error {
	return translate(updateAnswer(r.db.WithContext(ctx), a))
}

// DeleteAnswer removes an answer of the given question
func (r *GormQuestionRepository) DeleteAnswer(ctx context.Context, questionID, answerID uuid.UUID) error {
	return affected(r.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", answerID, questionID).
		Delete(&models.AnswerModel{}))
}

// FindAnswer loads an answer of the given question
func (r *GormQuestionRepository) FindAnswer(ctx context.Context, questionID, answerID uuid.UUID) (*exam.Answer, error) {
	var model models.AnswerModel
	err := r.db.WithContext(ctx).Where("id = ? AND question_id = ?", answerID, questionID).Take(&model).Error
	if err != nil {
		return nil, translate(err)
	}
	return model.ToDomain(), nil
}

// FindAnswers lists the answers of a question in creation order
func (r *GormQuestionRepository) FindAnswers(ctx context.Context, questionID uuid.UUID) ([]*exam.Answer, error) {
	var rows []models.AnswerModel
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*exam.Answer, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormQuestionRepository) withAnswers(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Answers", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

func createAnswers(tx *gorm.DB, answers []*exam.Answer) error {
	if len(answers) == 0 {
		return nil
	}
	rows := make([]*models.AnswerModel, len(answers))
	for i, a := range answers {
		rows[i] = models.AnswerModelFromDomain(a)
	}
	return tx.Create(rows).Error
}

func updateAnswer(tx *gorm.DB, a *exam.Answer) error {
	return affected(tx.Model(&models.AnswerModel{}).
		Where("id = ? AND question_id = ?", a.ID, a.QuestionID).
		Updates(map[string]any{"text": a.Text, "is_correct": a.IsCorrect, "updated_at": a.UpdatedAt}))
}

func questionsToDomain(rows []models.QuestionModel) []*exam.Question {
	out := make([]*exam.Question, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

func existsByColumn(ctx context.Context, db *gorm.DB, model any, column, value string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := db.WithContext(ctx).Model(model).Where(column+" = ?", value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

var (
	_ exam.CategoryRepository      = (*GormCategoryRepository)(nil)
	_ exam.TypeSelectionRepository = (*GormTypeSelectionRepository)(nil)
	_ exam.QuestionRepository      = (*GormQuestionRepository)(nil)
)
