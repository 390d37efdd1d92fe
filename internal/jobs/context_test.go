package jobs_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/jobs"
	"github.com/evelahealth/evela-backend/internal/repos/testutil"
)

func TestPayloadUUID(t *testing.T) {
	log := testutil.Logger(t)
	id := uuid.New()
	job := &domain.JobRun{
		JobType: domain.JobTypeReportExtraction,
		Payload: datatypes.JSON([]byte(`{"report_id":"` + id.String() + `","note":"x"}`)),
	}
	jc := jobs.NewContext(context.Background(), nil, log, job, nil)

	got, ok := jc.PayloadUUID("report_id")
	if !ok || got != id {
		t.Fatalf("PayloadUUID = %v, %v; want %v, true", got, ok, id)
	}
	if _, ok := jc.PayloadUUID("missing"); ok {
		t.Fatal("missing key reported ok")
	}
	if _, ok := jc.PayloadUUID("note"); ok {
		t.Fatal("non-uuid value reported ok")
	}
}

func TestPayloadMalformedJSON(t *testing.T) {
	log := testutil.Logger(t)
	job := &domain.JobRun{Payload: datatypes.JSON([]byte(`not json`))}
	jc := jobs.NewContext(context.Background(), nil, log, job, nil)
	if p := jc.Payload(); p == nil || len(p) != 0 {
		t.Fatalf("Payload = %v, want empty map", p)
	}
}

func TestRegistryDispatchLookup(t *testing.T) {
	r := jobs.NewRegistry()
	if _, ok := r.Get(domain.JobTypeReportExtraction); ok {
		t.Fatal("empty registry returned a handler")
	}
	h := &fakeHandler{}
	r.Register(domain.JobTypeReportExtraction, h)
	got, ok := r.Get(domain.JobTypeReportExtraction)
	if !ok || got != jobs.Handler(h) {
		t.Fatal("registered handler not returned")
	}
}

type fakeHandler struct{ ran bool }

func (f *fakeHandler) Run(jc *jobs.Context) { f.ran = true }
