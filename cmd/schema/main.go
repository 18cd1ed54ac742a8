// Package main 生成 docs/ 下的 JSON Schema 文件
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeisme/codescope/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/codescope/cmd/schema
func main() {
	dir := filepath.Join("..", "..", "docs")
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	for _, kind := range schema.Kinds() {
		if err := write(filepath.Join(dir, fmt.Sprintf("%s_schema.json", kind)), kind); err != nil {
			panic(err)
		}
	}
}

func write(path string, kind schema.Kind) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return schema.Generate(f, kind)
}
