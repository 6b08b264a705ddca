package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"

	"github.com/justnitesh531/orderflow/domain"
)

// The draft is a singleton document stored under a fixed key.
const (
	draftPartitionKey = "draft"
	draftRowKey       = "current"
)

// Storage provides access to underlying persistence mechanisms: the draft
// table and the reminder notification queue.
type Storage struct {
	draftTable  *aztables.Client
	notifyQueue *azqueue.QueueClient
}

// New creates a Storage instance from the given connection string.
func New(connStr, draftTable, notifyQueue string) (*Storage, error) {
	tablesClientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &tablesClientOptions)
	if err != nil {
		return nil, err
	}
	dt := svc.NewClient(draftTable)
	queueClientOptions := azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    5,
				TryTimeout:    time.Minute * 5,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 60,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	nq, err := azqueue.NewQueueClientFromConnectionString(connStr, notifyQueue, &queueClientOptions)
	if err != nil {
		return nil, err
	}
	return &Storage{draftTable: dt, notifyQueue: nq}, nil
}

type draftEntity struct {
	aztables.Entity
	Items  string `json:"Items"`
	Status string `json:"Status"`
}

func decodeDraftEntity(data []byte) (domain.Draft, error) {
	var ent draftEntity
	if err := json.Unmarshal(data, &ent); err != nil {
		return domain.Draft{}, err
	}
	draft := domain.EmptyDraft()
	if ent.Status != "" {
		draft.Status = domain.Status(ent.Status)
	}
	if ent.Items != "" {
		if err := json.Unmarshal([]byte(ent.Items), &draft.Items); err != nil {
			return domain.Draft{}, err
		}
	}
	if draft.Items == nil {
		draft.Items = []domain.Item{}
	}
	return draft, nil
}

func encodeDraftEntity(draft domain.Draft) ([]byte, error) {
	items, err := json.Marshal(draft.Items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(draftEntity{
		Entity: aztables.Entity{PartitionKey: draftPartitionKey, RowKey: draftRowKey},
		Items:  string(items),
		Status: string(draft.Status),
	})
}

// LoadDraft retrieves the current draft together with its ETag. A draft
// that was never persisted loads as the empty default with an empty tag;
// reading never creates state.
func (s *Storage) LoadDraft(ctx context.Context) (domain.Draft, string, error) {
	resp, err := s.draftTable.GetEntity(ctx, draftPartitionKey, draftRowKey, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return domain.EmptyDraft(), "", nil
		}
		return domain.Draft{}, "", err
	}
	draft, err := decodeDraftEntity(resp.Value)
	if err != nil {
		return domain.Draft{}, "", err
	}
	return draft, string(resp.ETag), nil
}

// SaveDraft persists the full draft under optimistic concurrency. An empty
// etag inserts the document and fails if it already exists; a non-empty
// etag replaces the stored document only when it is unchanged since the
// load. Both races surface as domain.ErrConcurrencyConflict.
func (s *Storage) SaveDraft(ctx context.Context, draft domain.Draft, etag string) error {
	payload, err := encodeDraftEntity(draft)
	if err != nil {
		return err
	}
	if etag == "" {
		_, err = s.draftTable.AddEntity(ctx, payload, nil)
		return mapConflict(err, 409)
	}
	et := azcore.ETag(etag)
	_, err = s.draftTable.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{
		IfMatch:    &et,
		UpdateMode: aztables.UpdateModeReplace,
	})
	// A 404 means the draft was cleared between load and save; the caller
	// retries against the fresh state.
	return mapConflict(err, 412, 404)
}

// ResetDraft unconditionally replaces the draft with the empty default.
func (s *Storage) ResetDraft(ctx context.Context) error {
	payload, err := encodeDraftEntity(domain.EmptyDraft())
	if err != nil {
		return err
	}
	_, err = s.draftTable.UpsertEntity(ctx, payload, &aztables.UpsertEntityOptions{
		UpdateMode: aztables.UpdateModeReplace,
	})
	return err
}

// EnqueueNotification sends a reminder message to the notification queue.
func (s *Storage) EnqueueNotification(ctx context.Context, n domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = s.notifyQueue.EnqueueMessage(ctx, string(data), nil)
	return err
}

func mapConflict(err error, statuses ...int) error {
	if err == nil {
		return nil
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, status := range statuses {
			if respErr.StatusCode == status {
				return domain.ErrConcurrencyConflict
			}
		}
	}
	return err
}
