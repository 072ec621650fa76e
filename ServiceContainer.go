package main

import (
	"github.com/gin-gonic/gin"
	"go.etcd.io/bbolt"

	"runwayGridExcel/contracts"
)

type ServiceContainer struct {
	Database          *bbolt.DB
	FormulaExecutor   contracts.FormulaExecutor
	SheetRepository   contracts.SheetRepository
	WebhookDispatcher contracts.WebhookDispatcher
	ApiController     contracts.ApiController
	Router            *gin.Engine
}

func BuildServiceContainer(configDbPath string, gridRows int, gridCols int) (container ServiceContainer, err error) {
	container.Database, err = bbolt.Open(configDbPath, 0600, nil)
	serializer := NewCellBinarySerializer()

	container.FormulaExecutor = NewFormulaExecutor()
	container.WebhookDispatcher = NewWebhookDispatcher()
	container.SheetRepository = NewSheetRepository(
		container.Database, container.FormulaExecutor,
		serializer, container.WebhookDispatcher,
		gridRows, gridCols,
	)
	container.ApiController = NewApiController(
		container.SheetRepository,
		container.WebhookDispatcher,
		NewSheetExporter(container.FormulaExecutor),
	)

	container.Router = SetupRouter(container.ApiController)

	return
}
