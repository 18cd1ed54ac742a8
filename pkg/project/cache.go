package project

import (
	"github.com/dgraph-io/ristretto/v2"

	"github.com/yeisme/codescope/pkg/models"
)

// resultCache 以指纹为键缓存分析结果，每条结果计 1 个 cost
//
// nil 接收者上的所有操作均为空操作
type resultCache struct {
	c *ristretto.Cache[string, *models.AnalysisResult]
}

func newResultCache(maxItems int64) (*resultCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *models.AnalysisResult]{
		NumCounters: maxItems * 10,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &resultCache{c: c}, nil
}

func (r *resultCache) Get(fp string) (*models.AnalysisResult, bool) {
	if r == nil {
		return nil, false
	}
	return r.c.Get(fp)
}

// Set 写入后等待缓冲区处理完，保证随后的 Get 可见
func (r *resultCache) Set(fp string, res *models.AnalysisResult) {
	if r == nil {
		return
	}
	r.c.Set(fp, res, 1)
	r.c.Wait()
}

func (r *resultCache) Close() {
	if r == nil {
		return
	}
	r.c.Close()
}
