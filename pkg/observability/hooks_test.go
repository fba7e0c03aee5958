package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnStageStart(ctx, StageGroup)
	p.OnStageComplete(ctx, StageGroup, 4, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "scaffold")
	c.OnCacheMiss(ctx, "scaled")
	c.OnCacheSet(ctx, "scaffold", 1024)

	NoopStorageHooks{}.OnList(ctx, "s3://slices/", 12, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := Storage().(NoopStorageHooks); !ok {
		t.Error("Storage() should default to NoopStorageHooks")
	}

	stages := &recordingHooks{}
	SetPipelineHooks(stages)
	if Pipeline() != stages {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}
	customStorage := &testStorageHooks{}
	SetStorageHooks(customStorage)
	if Storage() != customStorage {
		t.Error("SetStorageHooks should set custom hooks")
	}

	Pipeline().OnStageStart(context.Background(), StageLoad)
	if len(stages.started) != 1 || stages.started[0] != StageLoad {
		t.Errorf("started = %v", stages.started)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

type recordingHooks struct {
	NoopPipelineHooks
	started []string
}

func (r *recordingHooks) OnStageStart(_ context.Context, stage string) {
	r.started = append(r.started, stage)
}

type testCacheHooks struct{ NoopCacheHooks }
type testStorageHooks struct{ NoopStorageHooks }
