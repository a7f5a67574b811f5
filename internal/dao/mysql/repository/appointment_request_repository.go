// Package repository implements the data access layer.
// This file implements AppointmentRequestRepository.
package repository

import (
	"theracare_server/internal/model"

	"gorm.io/gorm"
)

type appointmentRequestRepository struct {
	db *gorm.DB
}

// NewAppointmentRequestRepository creates an AppointmentRequestRepository.
func NewAppointmentRequestRepository(db *gorm.DB) AppointmentRequestRepository {
	return &appointmentRequestRepository{db: db}
}

func (r *appointmentRequestRepository) FindByUuid(uuid string) (*model.AppointmentRequest, error) {
	var request model.AppointmentRequest
	if err := r.db.Where("uuid = ?", uuid).First(&request).Error; err != nil {
		return nil, wrapDBErrorf(err, "find appointment request uuid=%s", uuid)
	}
	return &request, nil
}

func (r *appointmentRequestRepository) FindByTherapistAndStatus(therapistId, status string) ([]model.AppointmentRequest, error) {
	var requests []model.AppointmentRequest
	if err := r.db.Where("therapist_id = ? AND status = ?", therapistId, status).
		Order("session_date ASC").Find(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "find appointment requests therapist=%s", therapistId)
	}
	return requests, nil
}

func (r *appointmentRequestRepository) FindByPatient(patientId string) ([]model.AppointmentRequest, error) {
	var requests []model.AppointmentRequest
	if err := r.db.Where("patient_id = ?", patientId).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, wrapDBErrorf(err, "find appointment requests patient=%s", patientId)
	}
	return requests, nil
}

func (r *appointmentRequestRepository) Create(request *model.AppointmentRequest) error {
	if err := r.db.Create(request).Error; err != nil {
		return wrapDBError(err, "create appointment request")
	}
	return nil
}

func (r *appointmentRequestRepository) UpdateStatus(uuid string, status string) error {
	res := r.db.Model(&model.AppointmentRequest{}).Where("uuid = ?", uuid).Update("status", status)
	if res.Error != nil {
		return wrapDBErrorf(res.Error, "update appointment request uuid=%s", uuid)
	}
	if res.RowsAffected == 0 {
		return wrapDBErrorf(gorm.ErrRecordNotFound, "update appointment request uuid=%s", uuid)
	}
	return nil
}
