package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"machinery-registry/internal/entities"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/customvalidator"
	"machinery-registry/pkg/database"
	"machinery-registry/pkg/eventbus"
	"machinery-registry/pkg/filestorage"
	"machinery-registry/pkg/service"
	"machinery-registry/pkg/utils"
)

type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	Message      string          `json:"message"`
	Error        string          `json:"error"`
	Token        string          `json:"token"`
	AssignmentID uint64          `json:"assignmentId"`
	ExpiresIn    int64           `json:"expiresIn"`
}

type RegistryTestSuite struct {
	suite.Suite
	Echo  *echo.Echo
	DB    *database.DB
	Bus   *eventbus.Bus
	Token string

	// root of the upload storage
	UploadDir string
}

func (s *RegistryTestSuite) SetupTest() {
	ctx := context.Background()
	cfg := config.Default()
	cfg.JWT.SecretKey = "test-secret"
	cfg.Auth.MaxLoginAttempts = 3

	db, err := database.Connect(ctx, config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(s.T().TempDir(), "api.db"),
	})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db, nil))

	hash, err := utils.HashPassword("admin123")
	s.Require().NoError(err)
	_, err = repositories.NewUserRepository(db, zap.NewNop()).Create(ctx, nil, entities.User{
		Username: "admin", Password: hash, FullName: "System Administrator",
	})
	s.Require().NoError(err)

	e := echo.New()
	v := validator.New()
	s.Require().NoError(customvalidator.RegisterCustomValidations(v))
	e.Validator = utils.NewValidator(v)

	s.UploadDir = filepath.Join(s.T().TempDir(), "uploads")
	storage, err := filestorage.NewLocalFileStorage(s.UploadDir)
	s.Require().NoError(err)

	nop := zap.NewNop()
	s.Bus = eventbus.New(nop)
	InitRouter(e, Dependencies{
		DB:      db,
		Cache:   repositories.NewMemoryCacheRepository(time.Minute),
		JWT:     service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL),
		Bus:     s.Bus,
		Storage: storage,
		Config:  cfg,
	}, &Loggers{Main: nop, Auth: nop, Assignment: nop})

	s.Echo = e
	s.DB = db
	s.Token = s.login("admin", "admin123")
}

func (s *RegistryTestSuite) TearDownTest() {
	s.Bus.Wait()
	s.DB.Close()
}

func (s *RegistryTestSuite) do(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) != "" && bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (s *RegistryTestSuite) login(username, password string) string {
	rec, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().NotEmpty(env.Token)
	return env.Token
}

func (s *RegistryTestSuite) create(path string, body interface{}) uint64 {
	rec, env := s.do(http.MethodPost, path, body, s.Token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		ID uint64 `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	return created.ID
}

func (s *RegistryTestSuite) machineStatus(id uint64) string {
	rec, env := s.do(http.MethodGet, fmt.Sprintf("/api/machinery/%d", id), nil, s.Token)
	s.Require().Equal(http.StatusOK, rec.Code)
	var m struct {
		Status string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &m))
	return m.Status
}

func (s *RegistryTestSuite) TestLogin() {
	rec, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.NotEmpty(env.Error)

	rec, _ = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"}, "")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin123"}, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(int64((7 * 24 * time.Hour).Seconds()), env.ExpiresIn)

	rec, body := s.do(http.MethodGet, "/api/auth/me", nil, s.Token)
	s.Equal(http.StatusOK, rec.Code)
	s.True(body.Success)
	s.Contains(rec.Body.String(), `"fullName":"System Administrator"`)
}

func (s *RegistryTestSuite) TestLoginLockout() {
	for i := 0; i < 3; i++ {
		rec, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"}, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	}
	rec, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin123"}, "")
	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *RegistryTestSuite) TestRequiresToken() {
	rec, env := s.do(http.MethodGet, "/api/projects", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.NotEmpty(env.Error)

	rec, _ = s.do(http.MethodGet, "/api/machinery", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/auth/me", nil, "")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *RegistryTestSuite) TestRoadRepairScenario() {
	machineID := s.create("/api/machinery", map[string]interface{}{"code": "BH-001", "name": "Backhoe", "type": "Excavator"})
	projectID := s.create("/api/projects", map[string]interface{}{"name": "Road Repair", "latitude": 13.7, "longitude": 100.5})
	s.Equal(constants.MachineryStatusAvailable, s.machineStatus(machineID))

	path := fmt.Sprintf("/api/machinery/%d/assign", machineID)
	rec, env := s.do(http.MethodPost, path, map[string]interface{}{"project_id": projectID, "assigned_date": "2025-01-05"}, s.Token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.True(env.Success)
	s.NotZero(env.AssignmentID)
	s.Equal(constants.MachineryStatusInUse, s.machineStatus(machineID))

	rec, _ = s.do(http.MethodPut, path, map[string]interface{}{"assignment_id": env.AssignmentID, "status": "RETURNED", "return_date": "2025-02-01"}, s.Token)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Equal(constants.MachineryStatusAvailable, s.machineStatus(machineID))

	rec, env = s.do(http.MethodGet, fmt.Sprintf("/api/projects/%d", projectID), nil, s.Token)
	s.Require().Equal(http.StatusOK, rec.Code)
	var detail struct {
		Assignments []struct {
			Status        string `json:"status"`
			MachineryCode string `json:"machinery_code"`
		} `json:"assignments"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &detail))
	s.Require().Len(detail.Assignments, 1)
	s.Equal("RETURNED", detail.Assignments[0].Status)
	s.Equal("BH-001", detail.Assignments[0].MachineryCode)

	rec, env = s.do(http.MethodGet, "/api/projects/locations", nil, s.Token)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(string(env.Data), "Road Repair")
}

func (s *RegistryTestSuite) TestAssignValidationAndNotFound() {
	machineID := s.create("/api/machinery", map[string]interface{}{"code": "GR-01", "name": "Grader", "type": "Grader"})
	projectID := s.create("/api/projects", map[string]interface{}{"name": "Canal"})
	path := fmt.Sprintf("/api/machinery/%d/assign", machineID)

	rec, _ := s.do(http.MethodPost, path, map[string]interface{}{"assigned_date": "2025-01-05"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, path, map[string]interface{}{"project_id": projectID}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, path, map[string]interface{}{"project_id": projectID, "assigned_date": "05/01/2025"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPut, path, map[string]interface{}{"status": "RETURNED"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/machinery/9999/assign", map[string]interface{}{"project_id": projectID, "assigned_date": "2025-01-05"}, s.Token)
	s.Equal(http.StatusNotFound, rec.Code)
	rec, _ = s.do(http.MethodPost, path, map[string]interface{}{"project_id": 9999, "assigned_date": "2025-01-05"}, s.Token)
	s.Equal(http.StatusNotFound, rec.Code)
	rec, _ = s.do(http.MethodPut, path, map[string]interface{}{"assignment_id": 9999, "status": "RETURNED"}, s.Token)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(constants.MachineryStatusAvailable, s.machineStatus(machineID))

	rec, env := s.do(http.MethodPost, path, map[string]interface{}{"project_id": projectID, "assigned_date": "2025-01-05"}, s.Token)
	s.Require().Equal(http.StatusCreated, rec.Code)
	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("%s/%d", path, env.AssignmentID), nil, s.Token)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(constants.MachineryStatusInUse, s.machineStatus(machineID))
}

func (s *RegistryTestSuite) TestCrudErrors() {
	rec, _ := s.do(http.MethodPost, "/api/machinery", map[string]interface{}{"name": "No code", "type": "Truck"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/projects", map[string]interface{}{"description": "no name"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/teams", map[string]interface{}{}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)
	rec, _ = s.do(http.MethodPost, "/api/employees", map[string]interface{}{"code": "E-1", "first_name": "Ana"}, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.create("/api/machinery", map[string]interface{}{"code": "TR-01", "name": "Truck", "type": "Truck"})
	rec, _ = s.do(http.MethodPost, "/api/machinery", map[string]interface{}{"code": "TR-01", "name": "Truck 2", "type": "Truck"}, s.Token)
	s.Equal(http.StatusConflict, rec.Code)

	for _, path := range []string{"/api/projects/9999", "/api/machinery/9999", "/api/teams/9999", "/api/employees/9999"} {
		rec, _ = s.do(http.MethodGet, path, nil, s.Token)
		s.Equal(http.StatusNotFound, rec.Code, path)
		rec, _ = s.do(http.MethodDelete, path, nil, s.Token)
		s.Equal(http.StatusNotFound, rec.Code, path)
	}

	rec, _ = s.do(http.MethodGet, "/api/projects/abc", nil, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)

	machineID := s.create("/api/machinery", map[string]interface{}{"code": "EX-09", "name": "Excavator", "type": "Excavator"})
	projectID := s.create("/api/projects", map[string]interface{}{"name": "Bridge"})
	rec, _ = s.do(http.MethodPost, fmt.Sprintf("/api/machinery/%d/assign", machineID),
		map[string]interface{}{"project_id": projectID, "assigned_date": "2025-02-01"}, s.Token)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(http.MethodDelete, fmt.Sprintf("/api/projects/%d", projectID), nil, s.Token)
	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
	s.NotEmpty(env.Error)
	rec, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/machinery/%d", machineID), nil, s.Token)
	s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
}

func (s *RegistryTestSuite) TestTeamsAndEmployees() {
	teamID := s.create("/api/teams", map[string]interface{}{"name": "Paving crew"})
	s.create("/api/employees", map[string]interface{}{"code": "E-1", "first_name": "Ana", "last_name": "Ruiz", "team_id": teamID})
	s.create("/api/employees", map[string]interface{}{"code": "E-2", "first_name": "Bo", "last_name": "Kim"})

	rec, env := s.do(http.MethodGet, fmt.Sprintf("/api/employees?team_id=%d", teamID), nil, s.Token)
	s.Require().Equal(http.StatusOK, rec.Code)
	var list []map[string]interface{}
	s.Require().NoError(json.Unmarshal(env.Data, &list))
	s.Len(list, 1)

	rec, _ = s.do(http.MethodGet, "/api/employees?team_id=x", nil, s.Token)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPut, fmt.Sprintf("/api/teams/%d", teamID), map[string]interface{}{"name": "Asphalt crew"}, s.Token)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Asphalt crew")
}

func (s *RegistryTestSuite) TestDashboardAndReport() {
	s.create("/api/machinery", map[string]interface{}{"code": "EX-01", "name": "Excavator", "type": "Excavator"})

	rec, env := s.do(http.MethodGet, "/api/dashboard", nil, s.Token)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(string(env.Data), `"total_machinery":1`)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/machinery.xlsx", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)
	s.Equal(http.StatusOK, res.Code)
	s.Contains(res.Header().Get(echo.HeaderContentType), "spreadsheetml")
	s.NotZero(res.Body.Len())
}

func (s *RegistryTestSuite) upload(path, fileName string, content []byte) (*httptest.ResponseRecorder, envelope) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	s.Require().NoError(err)
	_, err = part.Write(content)
	s.Require().NoError(err)
	s.Require().NoError(w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.Token)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (s *RegistryTestSuite) TestImportMachinery() {
	s.create("/api/machinery", map[string]interface{}{"code": "BH-001", "name": "Backhoe", "type": "Backhoe"})

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Code", "Name", "Type", "Year"},
		{"BH-001", "Backhoe", "Backhoe", 2019},
		{"GR-001", "Grader", "Grader", 2021},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	s.Require().NoError(err)
	s.Require().NoError(f.Close())

	rec, env := s.upload("/api/machinery/import", "fleet.xlsx", buf.Bytes())
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result struct {
		Created int `json:"created"`
		Skipped int `json:"skipped"`
		Failed  int `json:"failed"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &result))
	s.Equal(1, result.Created)
	s.Equal(1, result.Skipped)
	s.Equal(0, result.Failed)

	rec, _ = s.do(http.MethodGet, "/api/machinery", nil, s.Token)
	s.Contains(rec.Body.String(), "GR-001")
	s.Equal(1, s.storedUploads())

	rec, env = s.upload("/api/machinery/import", "fleet.csv", []byte("code,name\nX,Y\n"))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.NotEmpty(env.Error)
}

// storedUploads counts the files kept under the upload root.
func (s *RegistryTestSuite) storedUploads() int {
	count := 0
	err := filepath.WalkDir(s.UploadDir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	s.Require().NoError(err)
	return count
}

func (s *RegistryTestSuite) TestImportMachinery_RejectedWorkbooks() {
	rec, env := s.upload("/api/machinery/import", "broken.xlsx", []byte("PK\x03\x04 definitely not a workbook"))
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	s.Equal("File is not a readable Excel workbook", env.Error)

	f := excelize.NewFile()
	s.Require().NoError(f.SetCellValue("Sheet1", "A1", "nothing here"))
	buf, err := f.WriteToBuffer()
	s.Require().NoError(err)
	s.Require().NoError(f.Close())

	rec, env = s.upload("/api/machinery/import", "empty.xlsx", buf.Bytes())
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	s.Equal("Workbook has no header row with code and name columns", env.Error)

	s.Zero(s.storedUploads(), "rejected uploads are removed")
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
