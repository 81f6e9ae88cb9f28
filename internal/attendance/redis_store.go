package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as hashes keyed by token and records as
// SETNX-guarded JSON values. Both invariants hold through single
// server-side operations: a Lua script for deactivate-prior+create,
// and SETNX for insert-if-absent.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(token string) string   { return "attendance:session:" + token }
func activeKey(lessonID string) string { return "attendance:active:" + lessonID }
func recordKey(lessonID, studentID string) string {
	return "attendance:record:" + lessonID + ":" + studentID
}
func lessonRecordsKey(lessonID string) string {
	return "attendance:lesson-records:" + lessonID
}

// KEYS[1] = active pointer for the lesson, KEYS[2] = new session hash.
// The previous session, if any, is flipped inactive in the same script
// so no observer ever sees two active sessions for one lesson.
var createSessionScript = redis.NewScript(`
local prev = redis.call("GET", KEYS[1])
if prev then
	redis.call("HSET", "attendance:session:" .. prev, "active", "0")
end
redis.call("HSET", KEYS[2],
	"id", ARGV[1],
	"lesson_id", ARGV[2],
	"token", ARGV[3],
	"issued_at", ARGV[4],
	"expires_at", ARGV[5],
	"active", "1")
redis.call("SET", KEYS[1], ARGV[3])
return 1
`)

// KEYS[1] = record value, KEYS[2] = per-lesson record index.
var insertRecordScript = redis.NewScript(`
if redis.call("SETNX", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], KEYS[1])
return 1
`)

func (r *RedisStore) CreateSessionDeactivatingPrior(
	ctx context.Context,
	lessonID string,
	token string,
	issuedAt time.Time,
	expiresAt time.Time,
) (Session, error) {

	sess := Session{
		ID:        uuid.NewString(),
		LessonID:  lessonID,
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Active:    true,
	}

	err := createSessionScript.Run(ctx, r.client,
		[]string{activeKey(lessonID), sessionKey(token)},
		sess.ID,
		lessonID,
		token,
		issuedAt.Format(time.RFC3339Nano),
		expiresAt.Format(time.RFC3339Nano),
	).Err()

	if err != nil {
		return Session{}, storageErr(err)
	}

	return sess, nil
}

func (r *RedisStore) FindSessionByToken(
	ctx context.Context,
	token string,
) (*Session, error) {

	vals, err := r.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, storageErr(err)
	}
	if len(vals) == 0 {
		return nil, nil // not found
	}

	issuedAt, err := time.Parse(time.RFC3339Nano, vals["issued_at"])
	if err != nil {
		return nil, storageErr(fmt.Errorf("bad issued_at for token: %w", err))
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, storageErr(fmt.Errorf("bad expires_at for token: %w", err))
	}

	return &Session{
		ID:        vals["id"],
		LessonID:  vals["lesson_id"],
		Token:     vals["token"],
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
		Active:    vals["active"] == "1",
	}, nil
}

func (r *RedisStore) InsertRecordIfAbsent(
	ctx context.Context,
	rec Record,
) (Record, error) {

	rec.ID = uuid.NewString()

	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, fmt.Errorf("attendance: failed to marshal record: %w", err)
	}

	inserted, err := insertRecordScript.Run(ctx, r.client,
		[]string{
			recordKey(rec.LessonID, rec.StudentID),
			lessonRecordsKey(rec.LessonID),
		},
		data,
	).Int()

	if err != nil {
		return Record{}, storageErr(err)
	}
	if inserted == 0 {
		return Record{}, ErrDuplicateAttendance
	}

	return rec, nil
}

func (r *RedisStore) ListRecordsByLesson(
	ctx context.Context,
	lessonID string,
) ([]Record, error) {

	keys, err := r.client.LRange(ctx, lessonRecordsKey(lessonID), 0, -1).Result()
	if err != nil {
		return nil, storageErr(err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, storageErr(err)
	}

	// The index list is chronological; return most recent first.
	records := make([]Record, 0, len(vals))
	for i := len(vals) - 1; i >= 0; i-- {
		raw, ok := vals[i].(string)
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, storageErr(fmt.Errorf("bad record payload: %w", err))
		}
		records = append(records, rec)
	}

	return records, nil
}
