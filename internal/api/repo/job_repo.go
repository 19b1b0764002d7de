package repo

import (
	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type JobRepository struct {
	Db *gorm.DB
}

func NewJobRepository() *JobRepository {
	return &JobRepository{Db: studio.DB}
}

func (slf *JobRepository) FindByID(id uint) (models.Job, error) {
	var job models.Job
	err := slf.Db.Preload("Client").Preload("Assignee").First(&job, id).Error
	return job, err
}

func (slf *JobRepository) GetAll() ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Preload("Client").Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

// FindByAssignee returns the jobs assigned to one user, the scope production
// roles see.
func (slf *JobRepository) FindByAssignee(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Preload("Client").
		Where("assigned_to = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindByClientEmail returns jobs belonging to the client record matching the
// given email, the identity-matching rule for the client role.
func (slf *JobRepository) FindByClientEmail(email string) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Preload("Client").
		Joins("JOIN clients ON clients.id = jobs.client_id").
		Where("clients.email = ?", email).
		Order("jobs.created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// FindDependents returns jobs whose depends_on_job_id points at the given
// job. Single hop, no transitive walk.
func (slf *JobRepository) FindDependents(jobID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := slf.Db.Where("depends_on_job_id = ?", jobID).Find(&jobs).Error
	return jobs, err
}

func (slf *JobRepository) Create(job *models.Job) error {
	return slf.Db.Create(job).Error
}

func (slf *JobRepository) Update(job *models.Job) error {
	return slf.Db.Save(job).Error
}

func (slf *JobRepository) UpdateFields(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Job{}).Where("id = ?", id).Updates(patch).Error
}
