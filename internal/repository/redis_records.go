package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"hrss-server/internal/domain"
	"hrss-server/internal/store"
)

// Redis-backed repos. Records are stored as JSON blobs under
// hrss:attending:<username>, hrss:patient:<id> and hrss:admin:<username>,
// with no TTL: records never expire.

const (
	attendingKeyPrefix = "hrss:attending:"
	patientKeyPrefix   = "hrss:patient:"
	adminKeyPrefix     = "hrss:admin:"
)

type RedisAttendingsRepo struct {
	kv store.KV
}

func NewRedisAttendingsRepo(kv store.KV) *RedisAttendingsRepo {
	return &RedisAttendingsRepo{kv: kv}
}

func (r *RedisAttendingsRepo) Add(ctx context.Context, a domain.Attending) error {
	return setJSON(ctx, r.kv, attendingKeyPrefix+a.AttendingUsername, a)
}

func (r *RedisAttendingsRepo) Get(ctx context.Context, username string) (*domain.Attending, error) {
	var a domain.Attending
	found, err := getJSON(ctx, r.kv, attendingKeyPrefix+username, &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

func (r *RedisAttendingsRepo) Count(ctx context.Context) (int, error) {
	keys, err := r.kv.ScanKeys(ctx, attendingKeyPrefix+"*")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (r *RedisAttendingsRepo) List(ctx context.Context) ([]domain.Attending, error) {
	keys, err := r.kv.ScanKeys(ctx, attendingKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	all := make([]domain.Attending, 0, len(keys))
	for _, key := range keys {
		var a domain.Attending
		found, err := getJSON(ctx, r.kv, key, &a)
		if err != nil {
			return nil, err
		}
		if found {
			all = append(all, a)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].AttendingUsername < all[j].AttendingUsername
	})
	return all, nil
}

type RedisPatientsRepo struct {
	kv store.KV
}

func NewRedisPatientsRepo(kv store.KV) *RedisPatientsRepo {
	return &RedisPatientsRepo{kv: kv}
}

func (r *RedisPatientsRepo) Add(ctx context.Context, p domain.Patient) error {
	if p.HeartRateHistory == nil {
		p.HeartRateHistory = map[string]int{}
	}
	return setJSON(ctx, r.kv, patientKey(p.PatientID), p)
}

func (r *RedisPatientsRepo) Get(ctx context.Context, patientID int) (*domain.Patient, error) {
	var p domain.Patient
	found, err := getJSON(ctx, r.kv, patientKey(patientID), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (r *RedisPatientsRepo) Count(ctx context.Context) (int, error) {
	keys, err := r.kv.ScanKeys(ctx, patientKeyPrefix+"*")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func (r *RedisPatientsRepo) List(ctx context.Context) ([]domain.Patient, error) {
	keys, err := r.kv.ScanKeys(ctx, patientKeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	all := make([]domain.Patient, 0, len(keys))
	for _, key := range keys {
		var p domain.Patient
		found, err := getJSON(ctx, r.kv, key, &p)
		if err != nil {
			return nil, err
		}
		if found {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].PatientID < all[j].PatientID
	})
	return all, nil
}

func (r *RedisPatientsRepo) ListByAttending(ctx context.Context, username string) ([]domain.Patient, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []domain.Patient
	for _, p := range all {
		if p.AttendingUsername == username {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *RedisPatientsRepo) AddHeartRate(ctx context.Context, patientID int, timestamp string, bpm int) error {
	p, err := r.Get(ctx, patientID)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("patient %d not found", patientID)
	}
	if p.HeartRateHistory == nil {
		p.HeartRateHistory = map[string]int{}
	}
	p.HeartRateHistory[timestamp] = bpm
	return setJSON(ctx, r.kv, patientKey(patientID), p)
}

type RedisAdminsRepo struct {
	kv store.KV
}

func NewRedisAdminsRepo(kv store.KV) *RedisAdminsRepo {
	return &RedisAdminsRepo{kv: kv}
}

func (r *RedisAdminsRepo) Add(ctx context.Context, a domain.Administrator) error {
	return setJSON(ctx, r.kv, adminKeyPrefix+a.AdminUsername, a)
}

func (r *RedisAdminsRepo) Get(ctx context.Context, username string) (*domain.Administrator, error) {
	var a domain.Administrator
	found, err := getJSON(ctx, r.kv, adminKeyPrefix+username, &a)
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

func (r *RedisAdminsRepo) Count(ctx context.Context) (int, error) {
	keys, err := r.kv.ScanKeys(ctx, adminKeyPrefix+"*")
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

func patientKey(patientID int) string {
	return patientKeyPrefix + strconv.Itoa(patientID)
}

func setJSON(ctx context.Context, kv store.KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(b), 0)
}

func getJSON(ctx context.Context, kv store.KV, key string, out any) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if err == store.ErrMiss {
			return false, nil
		}
		return false, err
	}
	return true, json.Unmarshal([]byte(raw), out)
}
