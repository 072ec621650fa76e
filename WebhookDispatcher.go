package main

import (
	"bytes"
	"log"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"

	"runwayGridExcel/contracts"
)

const WebhookWorkersCount = 5

type SheetWebhooks map[string]string

type WebhookSendCommand struct {
	Webhook string
	Cell    *contracts.Cell
}

// WebhookDispatcher posts updated cells to subscribed URLs. Subscriptions
// are keyed by sheet id and canonical cell label; delivery happens on a
// small worker pool fed through a buffered queue so SetCell never waits on
// a slow subscriber.
type WebhookDispatcher struct {
	queue    chan WebhookSendCommand
	mu       sync.RWMutex
	webhooks map[string]SheetWebhooks
	inflight sync.WaitGroup
}

func NewWebhookDispatcher() *WebhookDispatcher {
	return &WebhookDispatcher{
		queue:    make(chan WebhookSendCommand, 20),
		webhooks: map[string]SheetWebhooks{},
	}
}

func (d *WebhookDispatcher) SetWebhookUrl(sheetId string, cellKey string, webhookUrl string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.webhooks[sheetId]; !ok {
		d.webhooks[sheetId] = SheetWebhooks{}
	}

	if webhookUrl == "" {
		delete(d.webhooks[sheetId], cellKey)
	} else {
		d.webhooks[sheetId][cellKey] = webhookUrl
	}
}

func (d *WebhookDispatcher) GetWebhookUrl(sheetId string, cellKey string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.webhooks[sheetId][cellKey]
}

func (d *WebhookDispatcher) Notify(sheetId string, cells []*contracts.Cell) {
	d.mu.RLock()
	subscribed := len(d.webhooks[sheetId]) > 0
	d.mu.RUnlock()

	if subscribed {
		d.inflight.Add(1)
		go d.enqueue(sheetId, cells)
	}
}

func (d *WebhookDispatcher) enqueue(sheetId string, cells []*contracts.Cell) {
	defer d.inflight.Done()

	for _, cell := range cells {
		if webhook := d.GetWebhookUrl(sheetId, cell.Key); webhook != "" {
			d.queue <- WebhookSendCommand{
				Webhook: webhook,
				Cell:    cell,
			}
		}
	}
}

func (d *WebhookDispatcher) Start() {
	for i := 0; i < WebhookWorkersCount; i++ {
		go d.runSenderWorker()
	}
}

// Close waits for in-flight notifications to reach the queue, then closes
// it. Workers drain whatever is buffered before exiting.
func (d *WebhookDispatcher) Close() {
	d.inflight.Wait()
	close(d.queue)
}

func (d *WebhookDispatcher) runSenderWorker() {
	client := &http.Client{
		Timeout: time.Second * 5,
	}

	for command := range d.queue {
		payload, _ := json.Marshal(command.Cell)
		response, err := client.Post(command.Webhook, "application/json", bytes.NewBuffer(payload))

		if err != nil {
			log.Printf("webhook send error: %s", err)
		} else if response.StatusCode >= 300 {
			log.Printf("unexpected webhook response HTTP status: %s", response.Status)
		}
	}
}
