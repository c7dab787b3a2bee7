package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"privatepartyy/internal/config"
	handlers "privatepartyy/internal/handler"
	"privatepartyy/internal/models"
	"privatepartyy/internal/ratelimit"
	"privatepartyy/internal/service"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxUploadSize:  10 * 1024 * 1024,
		RateLimit:      10,
		DMMessageLimit: 10,
	}
}

// multipartBody собирает multipart запрос с файлом и полями формы
func multipartBody(t *testing.T, fileName, contentType string, fileData []byte, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(fileData)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

type formFile struct {
	name        string
	contentType string
	data        []byte
}

// multipartBodyMulti собирает multipart запрос с несколькими файлами
// под одним полем file
func multipartBodyMulti(t *testing.T, files []formFile, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+f.name+`"`)
		header.Set("Content-Type", f.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestGetPostsHandler(t *testing.T) {
	t.Run("Возвращаются посты только разрешенного события", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		postRepo := new(MockPostRepository)
		mediaRepo := new(MockMediaRepository)

		eventRepo.On("Resolve", mock.Anything, "jointoken123").
			Return(&models.Event{EventID: "event-1", Token: "jointoken123"}, nil)
		postRepo.On("GetByEventID", mock.Anything, "event-1").
			Return([]models.Post{
				{PostID: "p1", EventID: "event-1", Type: "text", CreatedAt: time.Now()},
				{PostID: "p2", EventID: "event-1", Type: "image", CreatedAt: time.Now()},
			}, nil)

		h := &handlers.Handlers{
			EventRepo: eventRepo,
			PostRepo:  postRepo,
			MediaRepo: mediaRepo,
			Cfg:       testConfig(),
			Validate:  validator.New(),
		}

		req := httptest.NewRequest("GET", "/api/events/jointoken123/posts", nil)
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "jointoken123"})
		rr := httptest.NewRecorder()

		h.GetPosts(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp handlers.PostsGetResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Total)
		for _, p := range resp.Posts {
			assert.Equal(t, "event-1", p.EventID)
		}

		// выборка шла строго по event_id разрешенного события
		postRepo.AssertCalled(t, "GetByEventID", mock.Anything, "event-1")
	})

	t.Run("К multi постам подтягиваются медиа", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		postRepo := new(MockPostRepository)
		mediaRepo := new(MockMediaRepository)

		eventRepo.On("Resolve", mock.Anything, "event-1").
			Return(&models.Event{EventID: "event-1"}, nil)
		postRepo.On("GetByEventID", mock.Anything, "event-1").
			Return([]models.Post{{PostID: "p1", EventID: "event-1", Type: "multi"}}, nil)
		mediaRepo.On("GetByPostID", mock.Anything, "p1").
			Return([]models.MediaItem{
				{MediaID: "m1", PostID: "p1", DisplayOrder: 0},
				{MediaID: "m2", PostID: "p1", DisplayOrder: 1},
			}, nil)

		h := &handlers.Handlers{
			EventRepo: eventRepo,
			PostRepo:  postRepo,
			MediaRepo: mediaRepo,
			Cfg:       testConfig(),
			Validate:  validator.New(),
		}

		req := httptest.NewRequest("GET", "/api/events/event-1/posts", nil)
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
		rr := httptest.NewRecorder()

		h.GetPosts(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp handlers.PostsGetResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Posts, 1)
		assert.Len(t, resp.Posts[0].Media, 2)
	})
}

func TestCreatePostHandler(t *testing.T) {
	event := &models.Event{EventID: "event-1", Token: "jointoken123"}

	t.Run("Текстовый пост создается", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		postRepo := new(MockPostRepository)

		eventRepo.On("Resolve", mock.Anything, "event-1").Return(event, nil)
		postRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		h := &handlers.Handlers{
			EventRepo: eventRepo,
			PostRepo:  postRepo,
			Cfg:       testConfig(),
			Validate:  validator.New(),
		}

		body, _ := json.Marshal(map[string]string{
			"authorId": "user-1",
			"content":  "всем привет",
		})

		req := httptest.NewRequest("POST", "/api/events/event-1/posts", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Недопустимый тип файла дает 400 со списком нарушений", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		uploadService := new(MockUploadService)

		eventRepo.On("Resolve", mock.Anything, "event-1").Return(event, nil)

		h := &handlers.Handlers{
			EventRepo:     eventRepo,
			UploadService: uploadService,
			Limiter:       ratelimit.NewLimiter(10, time.Minute),
			Cfg:           testConfig(),
			Validate:      validator.New(),
		}

		body, contentType := multipartBody(t, "report.pdf", "application/pdf",
			[]byte("%PDF-"), map[string]string{"authorId": "user-1"})

		req := httptest.NewRequest("POST", "/api/events/event-1/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotNil(t, resp.Details)

		uploadService.AssertNotCalled(t, "UploadAndRecord",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Несколько файлов создают мульти-пост", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		uploadService := new(MockUploadService)

		eventRepo.On("Resolve", mock.Anything, "event-1").Return(event, nil)

		var gotFiles []service.MediaFile
		uploadService.On("UploadMultiAndRecord", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotFiles = args.Get(2).([]service.MediaFile)
			}).
			Return(&models.Post{
				PostID:  "p1",
				EventID: "event-1",
				Type:    "multi",
				Media: []models.MediaItem{
					{MediaID: "m1", PostID: "p1", DisplayOrder: 0},
					{MediaID: "m2", PostID: "p1", DisplayOrder: 1},
				},
			}, nil)

		h := &handlers.Handlers{
			EventRepo:     eventRepo,
			UploadService: uploadService,
			Limiter:       ratelimit.NewLimiter(10, time.Minute),
			Cfg:           testConfig(),
			Validate:      validator.New(),
		}

		body, contentType := multipartBodyMulti(t, []formFile{
			{name: "a.jpg", contentType: "image/jpeg", data: []byte("jpegdata")},
			{name: "b.png", contentType: "image/png", data: []byte("pngdata")},
		}, map[string]string{"authorId": "user-1"})

		req := httptest.NewRequest("POST", "/api/events/event-1/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)

		// файлы дошли до сервиса в порядке формы
		require.Len(t, gotFiles, 2)
		assert.Equal(t, "a.jpg", gotFiles[0].FileName)
		assert.Equal(t, "b.png", gotFiles[1].FileName)

		var post models.Post
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &post))
		assert.Equal(t, "multi", post.Type)
		assert.Len(t, post.Media, 2)

		uploadService.AssertNotCalled(t, "UploadAndRecord",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Недопустимый файл в наборе отклоняет весь мульти-пост", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		uploadService := new(MockUploadService)

		eventRepo.On("Resolve", mock.Anything, "event-1").Return(event, nil)

		h := &handlers.Handlers{
			EventRepo:     eventRepo,
			UploadService: uploadService,
			Limiter:       ratelimit.NewLimiter(10, time.Minute),
			Cfg:           testConfig(),
			Validate:      validator.New(),
		}

		body, contentType := multipartBodyMulti(t, []formFile{
			{name: "a.jpg", contentType: "image/jpeg", data: []byte("jpegdata")},
			{name: "report.pdf", contentType: "application/pdf", data: []byte("%PDF-")},
		}, map[string]string{"authorId": "user-1"})

		req := httptest.NewRequest("POST", "/api/events/event-1/posts", body)
		req.Header.Set("Content-Type", contentType)
		req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
		rr := httptest.NewRecorder()

		h.CreatePost(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)

		uploadService.AssertNotCalled(t, "UploadMultiAndRecord",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Превышение лимита загрузок дает 429", func(t *testing.T) {
		eventRepo := new(MockEventRepository)
		uploadService := new(MockUploadService)

		eventRepo.On("Resolve", mock.Anything, "event-1").Return(event, nil)
		uploadService.On("UploadAndRecord", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&models.Post{PostID: "p1", EventID: "event-1", Type: "image"}, nil)

		// лимит в одну загрузку, вторая должна быть отклонена
		h := &handlers.Handlers{
			EventRepo:     eventRepo,
			UploadService: uploadService,
			Limiter:       ratelimit.NewLimiter(1, time.Minute),
			Cfg:           testConfig(),
			Validate:      validator.New(),
		}

		send := func() *httptest.ResponseRecorder {
			body, contentType := multipartBody(t, "photo.jpg", "image/jpeg",
				[]byte("jpegdata"), map[string]string{"authorId": "user-1"})

			req := httptest.NewRequest("POST", "/api/events/event-1/posts", body)
			req.Header.Set("Content-Type", contentType)
			req = mux.SetURLVars(req, map[string]string{"idOrToken": "event-1"})
			rr := httptest.NewRecorder()

			h.CreatePost(rr, req)
			return rr
		}

		first := send()
		require.Equal(t, http.StatusCreated, first.Code)

		second := send()
		require.Equal(t, http.StatusTooManyRequests, second.Code)

		var resp handlers.ErrorResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
		details, ok := resp.Details.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(1), details["limit"])
		assert.Equal(t, float64(0), details["remaining"])

		uploadService.AssertNumberOfCalls(t, "UploadAndRecord", 1)
	})
}
