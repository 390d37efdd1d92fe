package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/evelahealth/evela-backend/internal/domain"
	"github.com/evelahealth/evela-backend/internal/platform/logger"
	"github.com/evelahealth/evela-backend/internal/repos"
)

// Context is the execution handle for one claimed job run. Handlers report
// their outcome through Succeed/Fail and never touch the job_run row directly.
type Context struct {
	Ctx     context.Context
	DB      *gorm.DB
	Log     *logger.Logger
	Job     *domain.JobRun
	repo    repos.JobRunRepo
	payload map[string]any
}

func NewContext(ctx context.Context, db *gorm.DB, log *logger.Logger, job *domain.JobRun, repo repos.JobRunRepo) *Context {
	c := &Context{
		Ctx:  ctx,
		DB:   db,
		Log:  log,
		Job:  job,
		repo: repo,
	}
	c.decodePayload()
	return c
}

func (c *Context) decodePayload() {
	c.payload = map[string]any{}
	if c.Job == nil || len(c.Job.Payload) == 0 {
		return
	}
	var m map[string]any
	if err := json.Unmarshal(c.Job.Payload, &m); err == nil {
		c.payload = m
	}
}

// Payload never returns nil.
func (c *Context) Payload() map[string]any {
	if c.payload == nil {
		c.payload = map[string]any{}
	}
	return c.payload
}

func (c *Context) PayloadUUID(key string) (uuid.UUID, bool) {
	v, ok := c.Payload()[key]
	if !ok || v == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(fmt.Sprint(v))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Context) Heartbeat() {
	if c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	if err := c.repo.Heartbeat(c.Ctx, nil, c.Job.ID); err != nil {
		c.Log.Warn("Job heartbeat failed", "job_id", c.Job.ID, "error", err)
	}
}

func (c *Context) Succeed(result map[string]any) {
	if c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	now := time.Now()
	updates := map[string]interface{}{
		"status":     domain.JobSucceeded,
		"error":      "",
		"updated_at": now,
	}
	if result != nil {
		if raw, err := json.Marshal(result); err == nil {
			updates["result"] = datatypes.JSON(raw)
		}
	}
	if err := c.repo.UpdateFields(c.Ctx, nil, c.Job.ID, updates); err != nil {
		c.Log.Error("Job success write failed", "job_id", c.Job.ID, "error", err)
		return
	}
	c.Job.Status = domain.JobSucceeded
	c.Log.Info("Job succeeded", "job_id", c.Job.ID, "job_type", c.Job.JobType)
}

// Fail records the failure and releases the claim. The claim query decides
// whether the attempt budget allows a retry.
func (c *Context) Fail(stage string, cause error) {
	if c.Job == nil || c.Job.ID == uuid.Nil {
		return
	}
	now := time.Now()
	msg := stage
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", stage, cause)
	}
	updates := map[string]interface{}{
		"status":        domain.JobFailed,
		"error":         msg,
		"last_error_at": now,
		"locked_at":     nil,
		"updated_at":    now,
	}
	if err := c.repo.UpdateFields(c.Ctx, nil, c.Job.ID, updates); err != nil {
		c.Log.Error("Job failure write failed", "job_id", c.Job.ID, "error", err)
		return
	}
	c.Job.Status = domain.JobFailed
	c.Job.Error = msg
	c.Log.Warn("Job failed", "job_id", c.Job.ID, "job_type", c.Job.JobType, "stage", stage, "error", cause)
}
