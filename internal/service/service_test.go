package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/colechengame/Nreporter/internal/model"
	"github.com/colechengame/Nreporter/internal/repository"
)

// ==================== 测试辅助 ====================

// setupAuthTestDB 建一个内存数据库并迁移全部表
func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Report{}, &model.ReportTemplate{}, &model.TemplateReport{},
		&model.Staff{},
		&model.Store{}, &model.StoreManager{}, &model.StoreAuthUser{}, &model.StoreAuthScope{},
		&model.Group{}, &model.GroupStore{}, &model.GroupManager{}, &model.GroupManagerScope{},
		&model.AICommandLog{},
	); err != nil {
		t.Fatalf("迁移测试表失败: %v", err)
	}
	return db
}

// testEnv 打包服务层测试用到的全部依赖
type testEnv struct {
	db        *gorm.DB
	uow       *repository.AuthUnitOfWork
	reports   repository.ReportRepository
	staffs    repository.StaffRepository
	stores    repository.StoreRepository
	groups    repository.GroupRepository
	templates repository.TemplateRepository
	scopes    repository.ScopeRepository
	aiLogs    repository.AICommandLogRepository

	scopeSvc    *ScopeService
	storeSvc    *StoreService
	staffSvc    *StaffService
	groupSvc    *GroupService
	templateSvc *TemplateService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupAuthTestDB(t)
	env := &testEnv{
		db:        db,
		uow:       repository.NewAuthUnitOfWork(db),
		reports:   repository.NewReportRepository(db),
		staffs:    repository.NewStaffRepository(db),
		stores:    repository.NewStoreRepository(db),
		groups:    repository.NewGroupRepository(db),
		templates: repository.NewTemplateRepository(db),
		scopes:    repository.NewScopeRepository(db),
		aiLogs:    repository.NewAICommandLogRepository(db),
	}

	env.scopeSvc = NewScopeService()
	env.storeSvc = NewStoreService(env.uow, env.stores, env.staffs, env.scopeSvc)
	env.staffSvc = NewStaffService(env.staffs)
	env.groupSvc = NewGroupService(env.uow, env.groups, env.staffs, env.scopeSvc)
	env.templateSvc = NewTemplateService(env.uow, env.templates, env.scopeSvc)
	return env
}

// ==================== 测试数据 ====================

func (e *testEnv) createReport(t *testing.T, code, name string) *model.Report {
	t.Helper()
	report := &model.Report{Code: code, Name: name, Category: model.ReportCategoryOperation, IsActive: true}
	if err := e.db.Create(report).Error; err != nil {
		t.Fatalf("建立测试报表失败: %v", err)
	}
	return report
}

func (e *testEnv) createStore(t *testing.T, code, name string) *model.Store {
	t.Helper()
	store := &model.Store{Code: code, Name: name, Type: model.StoreTypeMed, RoleEmail: code + "@example.com", IsActive: true}
	if err := e.db.Create(store).Error; err != nil {
		t.Fatalf("建立测试门市失败: %v", err)
	}
	return store
}

func (e *testEnv) createStaff(t *testing.T, code, name, nickname string) *model.Staff {
	t.Helper()
	staff := &model.Staff{StaffCode: code, Name: name, Nickname: nickname, Role: model.StaffRoleStoreManager, IsActive: true}
	if err := e.db.Create(staff).Error; err != nil {
		t.Fatalf("建立测试人员失败: %v", err)
	}
	return staff
}
