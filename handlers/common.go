package handlers

import (
	"context"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"camstore-backend/changefeed"
	"camstore-backend/firebase"
	"camstore-backend/models"
	"camstore-backend/schedule"
	"camstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VisibleSource is the read side of a visibility poller.
type VisibleSource[T any] interface {
	Visible() []T
}

// PollerStatus is what the health endpoint reports for a poller.
type PollerStatus interface {
	Loading() bool
	LastError() error
	Interval() time.Duration
}

type uploadFunc func(ctx context.Context, file multipart.File, filename, contentType string) (string, error)

// scheduleForm is the visibility window as sent by the admin dashboard.
type scheduleForm struct {
	IsActive  bool   `form:"is_active" json:"is_active"`
	StartDate string `form:"start_date" json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime string `form:"start_time" json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime   string `form:"end_time" json:"end_time" binding:"omitempty,datetime=15:04"`
}

func (f scheduleForm) toSchedule() models.Schedule {
	return models.Schedule{
		IsActive:  f.IsActive,
		StartDate: optional(f.StartDate),
		EndDate:   optional(f.EndDate),
		StartTime: optional(f.StartTime),
		EndTime:   optional(f.EndTime),
	}
}

// datesInverted reports an end date before the start date. Daily time
// ranges are not checked: an inverted time range is stored as given.
func (f scheduleForm) datesInverted() bool {
	return f.StartDate != "" && f.EndDate != "" && f.EndDate < f.StartDate
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// statusOf is a record plus its schedule status at the time of the request.
type statusOf[T any] struct {
	Item   T               `json:"item"`
	Status schedule.Result `json:"schedule_status"`
}

func withStatus[T schedule.Windowed](items []T, now time.Time) []statusOf[T] {
	out := make([]statusOf[T], 0, len(items))
	for _, it := range items {
		out = append(out, statusOf[T]{Item: it, Status: schedule.Evaluate(it.ScheduleWindow(), now)})
	}
	return out
}

// swapRequest names two rows whose display_order should be exchanged.
type swapRequest struct {
	FirstID  uuid.UUID `json:"first_id" binding:"required"`
	SecondID uuid.UUID `json:"second_id" binding:"required"`
}

// publishChange tells other storefront instances about an admin edit. A nil
// publisher means the database feeds changes on its own.
func publishChange(ctx context.Context, pub changefeed.Publisher, table string, op changefeed.Op, id uuid.UUID) {
	if pub == nil {
		return
	}
	e := changefeed.Event{Table: table, Op: op, ID: id.String()}
	if err := pub.Publish(ctx, e); err != nil {
		log.Printf("[changefeed] publish %s %s %s failed: %v", table, op, id, err)
	}
}

// receiveImage uploads the "image" form file if present. It writes the error
// response itself and returns ok=false when the request should stop.
func receiveImage(c *gin.Context, upload uploadFunc, required bool) (url string, ok bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if required {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return "", false
		}
		return "", true
	}

	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return "", false
	}
	defer file.Close()

	url, err = upload(c.Request.Context(), file, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload failed"})
		return "", false
	}
	return url, true
}

// deleteImage removes a previously uploaded object; failures are only logged.
func deleteImage(ctx context.Context, del func(context.Context, string) error, imageURL string) {
	if imageURL == "" {
		return
	}
	objectPath, err := firebase.ObjectPathFromURL(imageURL)
	if err != nil {
		return
	}
	if err := del(ctx, objectPath); err != nil {
		log.Printf("Failed to delete image %s: %v", objectPath, err)
	}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads page/limit query params with the given default limit,
// capped at 100.
func pagination(c *gin.Context, defaultLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit, (page - 1) * limit
}
