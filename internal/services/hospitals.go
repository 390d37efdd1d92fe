package services

import (
	"context"

	"github.com/evelahealth/evela-backend/internal/platform/logger"
)

// Hospital is a directory entry. The directory ships with the binary; there
// is no live provider lookup yet.
type Hospital struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Specialties  []string `json:"specialties"`
	Rating       float64  `json:"rating"`
	DistanceKM   float64  `json:"distance_km"`
	HasEmergency bool     `json:"has_emergency"`
}

type HospitalService interface {
	List(ctx context.Context, emergencyOnly bool) ([]Hospital, error)
}

type hospitalService struct {
	log       *logger.Logger
	hospitals []Hospital
}

func NewHospitalService(baseLog *logger.Logger) HospitalService {
	return &hospitalService{
		log:       baseLog.With("service", "HospitalService"),
		hospitals: hospitalDirectory,
	}
}

func (s *hospitalService) List(ctx context.Context, emergencyOnly bool) ([]Hospital, error) {
	if !emergencyOnly {
		out := make([]Hospital, len(s.hospitals))
		copy(out, s.hospitals)
		return out, nil
	}
	out := make([]Hospital, 0, len(s.hospitals))
	for _, h := range s.hospitals {
		if h.HasEmergency {
			out = append(out, h)
		}
	}
	return out, nil
}

var hospitalDirectory = []Hospital{
	{
		ID:           1,
		Name:         "City Women's Health Center",
		Address:      "12 Rosewood Avenue",
		Phone:        "+1-555-0110",
		Specialties:  []string{"Gynecology", "Obstetrics", "Endocrinology"},
		Rating:       4.6,
		DistanceKM:   2.1,
		HasEmergency: true,
	},
	{
		ID:           2,
		Name:         "Lakeside General Hospital",
		Address:      "450 Lakeside Drive",
		Phone:        "+1-555-0132",
		Specialties:  []string{"General Medicine", "Emergency Care", "Radiology"},
		Rating:       4.2,
		DistanceKM:   3.8,
		HasEmergency: true,
	},
	{
		ID:           3,
		Name:         "Harmony Fertility & Hormone Clinic",
		Address:      "88 Birch Lane, Suite 4",
		Phone:        "+1-555-0178",
		Specialties:  []string{"Fertility", "Endocrinology"},
		Rating:       4.8,
		DistanceKM:   5.5,
		HasEmergency: false,
	},
	{
		ID:           4,
		Name:         "Northgate Medical Pavilion",
		Address:      "301 Northgate Boulevard",
		Phone:        "+1-555-0143",
		Specialties:  []string{"Internal Medicine", "Cardiology", "Gynecology"},
		Rating:       4.0,
		DistanceKM:   6.9,
		HasEmergency: true,
	},
	{
		ID:           5,
		Name:         "Willow Park Wellness Clinic",
		Address:      "7 Willow Park Road",
		Phone:        "+1-555-0195",
		Specialties:  []string{"Nutrition", "Preventive Care", "Mental Health"},
		Rating:       4.5,
		DistanceKM:   1.4,
		HasEmergency: false,
	},
	{
		ID:           6,
		Name:         "St. Maren Regional Hospital",
		Address:      "1200 Camden Street",
		Phone:        "+1-555-0121",
		Specialties:  []string{"Emergency Care", "Surgery", "Obstetrics", "Oncology"},
		Rating:       4.4,
		DistanceKM:   8.2,
		HasEmergency: true,
	},
}
