package main

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"
)

func TestBuildServiceContainer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	f, err := os.CreateTemp("", "db_*.db")
	assert.NoError(t, err)
	defer os.Remove(f.Name())

	serviceContainer, err := BuildServiceContainer(f.Name(), 100, 26)

	assert.NoError(t, err)

	// check database
	assert.NotNil(t, serviceContainer.Database)
	assert.IsType(t, &bbolt.DB{}, serviceContainer.Database)
	defer serviceContainer.Database.Close()

	// check formula executor
	assert.NotNil(t, serviceContainer.FormulaExecutor)
	assert.IsType(t, &FormulaExecutor{}, serviceContainer.FormulaExecutor)

	// check webhook dispatcher
	assert.NotNil(t, serviceContainer.WebhookDispatcher)
	assert.IsType(t, &WebhookDispatcher{}, serviceContainer.WebhookDispatcher)

	// check sheet repository
	assert.NotNil(t, serviceContainer.SheetRepository)
	assert.IsType(t, &SheetRepository{}, serviceContainer.SheetRepository)

	sheetRepository := serviceContainer.SheetRepository.(*SheetRepository)
	assert.NotNil(t, sheetRepository.db)
	assert.Equal(t, serviceContainer.Database, sheetRepository.db)
	assert.Equal(t, serviceContainer.FormulaExecutor, sheetRepository.executor)
	assert.Equal(t, serviceContainer.WebhookDispatcher, sheetRepository.dispatcher)

	assert.NotNil(t, sheetRepository.serializer)
	assert.IsType(t, &CellBinarySerializer{}, sheetRepository.serializer)

	rows, cols := sheetRepository.Dimensions()
	assert.Equal(t, 100, rows)
	assert.Equal(t, 26, cols)

	// check api controller
	assert.NotNil(t, serviceContainer.ApiController)
	assert.IsType(t, &ApiController{}, serviceContainer.ApiController)

	apiController := serviceContainer.ApiController.(*ApiController)
	assert.NotNil(t, apiController.SheetRepository)
	assert.Equal(t, serviceContainer.SheetRepository, apiController.SheetRepository)
	assert.NotNil(t, apiController.WebhookDispatcher)
	assert.Equal(t, serviceContainer.WebhookDispatcher, apiController.WebhookDispatcher)
	assert.NotNil(t, apiController.SheetExporter)

	// check router
	assert.NotNil(t, serviceContainer.Router)
	assert.IsType(t, &gin.Engine{}, serviceContainer.Router)

	// check routes
	routes := serviceContainer.Router.Routes()
	assert.NotNil(t, routes)
	// 5 api routes + health check
	assert.GreaterOrEqual(t, len(routes), 6)
}

func TestBuildServiceContainerFail(t *testing.T) {
	_, err := BuildServiceContainer("", 100, 26)
	assert.Error(t, err)
}
