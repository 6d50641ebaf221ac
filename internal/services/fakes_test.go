package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sovr-labs/go-fp-clearing/internal/common"
	"github.com/sovr-labs/go-fp-clearing/internal/common/clearingengine"
	"github.com/sovr-labs/go-fp-clearing/internal/common/publisher"
	"github.com/sovr-labs/go-fp-clearing/internal/models"
	"github.com/sovr-labs/go-fp-clearing/internal/repositories"
)

// memStore backs every in-memory repository of one test. Atomic holds txMu
// for the whole transaction, which serialises transactions the way the
// version check expects.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	bindings     map[string]models.RecipientAccountBinding
	versions     map[string]int64
	attestations map[string]models.Attestation
	intents      map[string]models.IntentRecord
	intentKeys   map[string]string
	transfers    map[string]models.TransferRecord
	observations []models.ObservationRecord
	outcomes     map[string]models.HonoringOutcome
}

func newMemStore() *memStore {
	return &memStore{
		bindings:     map[string]models.RecipientAccountBinding{},
		versions:     map[string]int64{},
		attestations: map[string]models.Attestation{},
		intents:      map[string]models.IntentRecord{},
		intentKeys:   map[string]string{},
		transfers:    map[string]models.TransferRecord{},
		outcomes:     map[string]models.HonoringOutcome{},
	}
}

type memSQL struct {
	s *memStore
}

var _ repositories.SQLRepository = (*memSQL)(nil)

func (m *memSQL) Atomic(ctx context.Context, steps func(ctx context.Context, r repositories.SQLRepository) error) error {
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()
	return steps(ctx, m)
}

func (m *memSQL) GetBindingRepository() repositories.BindingRepository { return &memBindings{m.s} }
func (m *memSQL) GetAttestationRepository() repositories.AttestationRepository {
	return &memAttestations{m.s}
}
func (m *memSQL) GetIntentRepository() repositories.IntentRepository { return &memIntents{m.s} }
func (m *memSQL) GetTransferStateRepository() repositories.TransferStateRepository {
	return &memTransfers{m.s}
}
func (m *memSQL) GetObservationRepository() repositories.ObservationRepository {
	return &memObservations{m.s}
}
func (m *memSQL) GetHonoringOutcomeRepository() repositories.HonoringOutcomeRepository {
	return &memOutcomes{m.s}
}

type memBindings struct{ s *memStore }

func (r *memBindings) Create(_ context.Context, b *models.RecipientAccountBinding) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bindings[b.ID]; ok {
		return common.ErrDataExist
	}
	r.s.bindings[b.ID] = *b
	return nil
}

func (r *memBindings) GetByID(_ context.Context, id string) (*models.RecipientAccountBinding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bindings[id]
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return &b, nil
}

func (r *memBindings) GetByIDForUpdate(ctx context.Context, id string) (*models.RecipientAccountBinding, error) {
	return r.GetByID(ctx, id)
}

func (r *memBindings) ListByRecipient(_ context.Context, recipientID string) ([]models.RecipientAccountBinding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []models.RecipientAccountBinding
	for _, b := range r.s.bindings {
		if b.RecipientID == recipientID {
			res = append(res, b)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *memBindings) GetDefault(_ context.Context, recipientID string) (*models.RecipientAccountBinding, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bindings {
		if b.RecipientID == recipientID && b.IsDefault {
			return &b, nil
		}
	}
	return nil, common.ErrDataNotFound
}

func (r *memBindings) CountActive(_ context.Context, recipientID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, b := range r.s.bindings {
		if b.RecipientID == recipientID && b.Status != models.BindingStatusFailed {
			n++
		}
	}
	return n, nil
}

func (r *memBindings) UpdateVerification(_ context.Context, b *models.RecipientAccountBinding, from models.BindingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.bindings[b.ID]
	if !ok || stored.Status != from {
		return fmt.Errorf("%w: binding %s left status %s", common.ErrConcurrentUpdate, b.ID, from)
	}
	stored.Status = b.Status
	stored.Method = b.Method
	stored.MicroDepositAmounts = b.MicroDepositAmounts
	stored.MicroDepositAttempts = b.MicroDepositAttempts
	stored.MicroDepositExpiresAt = b.MicroDepositExpiresAt
	stored.VerifiedAt = b.VerifiedAt
	stored.FailureReason = b.FailureReason
	stored.Reviewer = b.Reviewer
	stored.UpdatedAt = b.UpdatedAt
	r.s.bindings[b.ID] = stored
	return nil
}

func (r *memBindings) SwitchDefault(_ context.Context, recipientID, bindingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, b := range r.s.bindings {
		if b.RecipientID == recipientID {
			b.IsDefault = id == bindingID
			r.s.bindings[id] = b
		}
	}
	return nil
}

func (r *memBindings) ExpireMicroDeposits(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, b := range r.s.bindings {
		if b.Status == models.BindingStatusPendingVerification && b.MicroDepositExpiresAt != nil && !now.Before(*b.MicroDepositExpiresAt) {
			b.Status = models.BindingStatusFailed
			b.FailureReason = common.ErrMicroDepositWindow.Error()
			r.s.bindings[id] = b
			n++
		}
	}
	return n, nil
}

func (r *memBindings) EnsureVersion(_ context.Context, recipientID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.versions[recipientID]; !ok {
		r.s.versions[recipientID] = 0
	}
	return nil
}

func (r *memBindings) GetVersion(_ context.Context, recipientID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.versions[recipientID], nil
}

func (r *memBindings) CompareAndSwapVersion(_ context.Context, recipientID string, expected int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.versions[recipientID] != expected {
		return false, nil
	}
	r.s.versions[recipientID] = expected + 1
	return true, nil
}

type memAttestations struct{ s *memStore }

func (r *memAttestations) Create(_ context.Context, a *models.Attestation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attestations[a.ID] = *a
	return nil
}

func (r *memAttestations) GetByID(_ context.Context, id string) (*models.Attestation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attestations[id]
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return &a, nil
}

func (r *memAttestations) Consume(_ context.Context, id, fingerprint string, now time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attestations[id]
	if !ok || a.IntentFingerprint != fingerprint || a.Status != models.AttestationStatusAttested || !a.ExpiresAt.After(now) {
		return false, nil
	}
	a.Status = models.AttestationStatusConsumed
	a.ConsumedAt = &now
	r.s.attestations[id] = a
	return true, nil
}

func (r *memAttestations) ExpireStale(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.attestations {
		if a.Status == models.AttestationStatusAttested && !a.ExpiresAt.After(now) {
			a.Status = models.AttestationStatusExpired
			r.s.attestations[id] = a
			n++
		}
	}
	return n, nil
}

type memIntents struct{ s *memStore }

func (r *memIntents) Create(_ context.Context, rec *models.IntentRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.intentKeys[rec.IdempotencyKey]; ok {
		return false, nil
	}
	r.s.intentKeys[rec.IdempotencyKey] = rec.ID
	r.s.intents[rec.ID] = *rec
	return true, nil
}

func (r *memIntents) GetByIdempotencyKey(ctx context.Context, key string) (*models.IntentRecord, error) {
	r.s.mu.Lock()
	id, ok := r.s.intentKeys[key]
	r.s.mu.Unlock()
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *memIntents) GetByID(_ context.Context, id string) (*models.IntentRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.intents[id]
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return &rec, nil
}

func (r *memIntents) UpdateResult(_ context.Context, rec *models.IntentRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.intents[rec.ID]; !ok {
		return common.ErrDataNotFound
	}
	r.s.intents[rec.ID] = *rec
	return nil
}

type memTransfers struct{ s *memStore }

func (r *memTransfers) Create(_ context.Context, rec *models.TransferRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[rec.TransferID]; ok {
		return false, nil
	}
	r.s.transfers[rec.TransferID] = *rec
	return true, nil
}

func (r *memTransfers) GetByID(_ context.Context, transferID string) (*models.TransferRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.transfers[transferID]
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return &rec, nil
}

func (r *memTransfers) GetByIntentID(_ context.Context, intentID string) (*models.TransferRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.transfers {
		if rec.IntentID == intentID {
			return &rec, nil
		}
	}
	return nil, common.ErrDataNotFound
}

func (r *memTransfers) UpdateState(_ context.Context, transferID string, from, to models.TransferState, finalizedAt *time.Time, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.transfers[transferID]
	if !ok || rec.State != from {
		return fmt.Errorf("%w: %s is not %s", common.ErrInvalidTransition, transferID, from)
	}
	rec.State = to
	rec.FinalizedAt = finalizedAt
	rec.UpdatedAt = now
	r.s.transfers[transferID] = rec
	return nil
}

type memObservations struct{ s *memStore }

func (r *memObservations) InsertSet(_ context.Context, set models.ObservationSet) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, rec := range set {
		if r.hasLeg(rec.ClearingTransferID, rec.LegIndex) {
			continue
		}
		r.s.observations = append(r.s.observations, rec)
		n++
	}
	return n, nil
}

func (r *memObservations) hasLeg(transferID string, legIndex int) bool {
	for _, rec := range r.s.observations {
		if rec.ClearingTransferID == transferID && rec.LegIndex == legIndex {
			return true
		}
	}
	return false
}

func (r *memObservations) ExistsForTransfer(_ context.Context, transferID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.observations {
		if rec.ClearingTransferID == transferID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memObservations) ListByTransfer(_ context.Context, transferID string) (models.ObservationSet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res models.ObservationSet
	for _, rec := range r.s.observations {
		if rec.ClearingTransferID == transferID {
			res = append(res, rec)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].LegIndex < res[j].LegIndex })
	return res, nil
}

func (r *memObservations) SumByAccount(_ context.Context, accountID string, asOf time.Time) (models.ObservationTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := models.ObservationTotals{AccountID: accountID}
	for _, rec := range r.s.observations {
		if rec.AccountID == accountID && !rec.ObservedAt.After(asOf) {
			res.Debit = res.Debit.Add(rec.Debit)
			res.Credit = res.Credit.Add(rec.Credit)
		}
	}
	return res, nil
}

func (r *memObservations) SumAllAccounts(_ context.Context) ([]models.ObservationTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byAccount := map[string]models.ObservationTotals{}
	for _, rec := range r.s.observations {
		t := byAccount[rec.AccountID]
		t.AccountID = rec.AccountID
		t.Debit = t.Debit.Add(rec.Debit)
		t.Credit = t.Credit.Add(rec.Credit)
		byAccount[rec.AccountID] = t
	}
	res := make([]models.ObservationTotals, 0, len(byAccount))
	for _, t := range byAccount {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].AccountID < res[j].AccountID })
	return res, nil
}

func (r *memObservations) History(_ context.Context, filter models.HistoryFilter) ([]models.ObservationRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []models.ObservationRecord
	for _, rec := range r.s.observations {
		if rec.AccountID != filter.AccountID {
			continue
		}
		if !filter.From.IsZero() && rec.ObservedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !rec.ObservedAt.Before(filter.To) {
			continue
		}
		res = append(res, rec)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].ObservedAt.Equal(res[j].ObservedAt) {
			return res[i].ObservedAt.Before(res[j].ObservedAt)
		}
		return res[i].ID < res[j].ID
	})
	if filter.Cursor != nil {
		start := len(res)
		for i, rec := range res {
			if rec.ObservedAt.After(filter.Cursor.At) || (rec.ObservedAt.Equal(filter.Cursor.At) && rec.ID > filter.Cursor.ID) {
				start = i
				break
			}
		}
		res = res[start:]
	}
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res, nil
}

type memOutcomes struct{ s *memStore }

func outcomeKey(transferID, rail string) string { return transferID + "|" + rail }

func (r *memOutcomes) Upsert(_ context.Context, o *models.HonoringOutcome) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := outcomeKey(o.TransferID, o.Rail)
	if stored, ok := r.s.outcomes[key]; ok && stored.Status != models.HonoringStatusRetrying {
		return false, nil
	}
	r.s.outcomes[key] = *o
	return true, nil
}

func (r *memOutcomes) Get(_ context.Context, transferID, rail string) (*models.HonoringOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.outcomes[outcomeKey(transferID, rail)]
	if !ok {
		return nil, common.ErrDataNotFound
	}
	return &o, nil
}

func (r *memOutcomes) ListByTransfer(_ context.Context, transferID string) ([]models.HonoringOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []models.HonoringOutcome
	for _, o := range r.s.outcomes {
		if o.TransferID == transferID {
			res = append(res, o)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Rail < res[j].Rail })
	return res, nil
}

func (r *memOutcomes) ListRetrying(_ context.Context, limit int) ([]models.HonoringOutcome, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var res []models.HonoringOutcome
	for _, o := range r.s.outcomes {
		if o.Status == models.HonoringStatusRetrying {
			res = append(res, o)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UpdatedAt.Before(res[j].UpdatedAt) })
	if len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

// memCache mimics the Redis commands the services use, ignoring ttl.
type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

var _ repositories.CacheRepository = (*memCache)(nil)

func (c *memCache) SetIfNotExists(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	c.data[key] = fmt.Sprint(value)
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	default:
		c.data[key] = fmt.Sprint(v)
	}
	return nil
}

func (c *memCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", common.ErrDataNotFound
	}
	return v, nil
}

func (c *memCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) IncrBy(_ context.Context, key string, delta int64, _ time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, _ := strconv.ParseInt(c.data[key], 10, 64)
	cur += delta
	c.data[key] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (c *memCache) SumInts(_ context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum int64
	for _, k := range keys {
		v, _ := strconv.ParseInt(c.data[k], 10, 64)
		sum += v
	}
	return sum, nil
}

// staticRuleSet serves a fixed policy and chart.
type staticRuleSet struct {
	mu     sync.Mutex
	policy models.PolicyRuleSet
	chart  models.ChartOfAccounts
}

var _ repositories.RuleSetRepository = (*staticRuleSet)(nil)

func (r *staticRuleSet) GetPolicy(context.Context) (models.PolicyRuleSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy, nil
}

func (r *staticRuleSet) GetChart(context.Context) (models.ChartOfAccounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chart, nil
}

func (r *staticRuleSet) PublishPolicy(_ context.Context, ruleSet models.PolicyRuleSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = ruleSet
	return nil
}

func (r *staticRuleSet) setChart(chart models.ChartOfAccounts) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chart = chart
}

func (r *staticRuleSet) Reload(context.Context) error { return nil }

func (r *staticRuleSet) RefreshDataPeriodically(context.Context, time.Duration) {}

// recordingPublisher keeps every published message as JSON.
type recordingPublisher struct {
	mu       sync.Mutex
	messages [][]byte
	err      error
}

var _ publisher.Publisher = (*recordingPublisher)(nil)

func (p *recordingPublisher) Publish(_ context.Context, message any, _ ...publisher.PublishOption) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	b, err := json.Marshal(message)
	if err != nil {
		return err
	}
	p.messages = append(p.messages, b)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func (p *recordingPublisher) events() []models.ClearingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	res := make([]models.ClearingEvent, 0, len(p.messages))
	for _, m := range p.messages {
		var e models.ClearingEvent
		if json.Unmarshal(m, &e) == nil {
			res = append(res, e)
		}
	}
	return res
}

// lossyEngine applies creates but reports the first lost of them as
// unavailable, like a response dropped after the engine committed.
type lossyEngine struct {
	clearingengine.Client

	mu   sync.Mutex
	lost int
}

func (e *lossyEngine) CreateTransfer(ctx context.Context, transfer models.Transfer) (clearingengine.Outcome, error) {
	outcome, err := e.Client.CreateTransfer(ctx, transfer)
	if err != nil {
		return outcome, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lost > 0 {
		e.lost--
		return clearingengine.Outcome{}, clearingengine.ErrUnavailable
	}
	return outcome, nil
}
