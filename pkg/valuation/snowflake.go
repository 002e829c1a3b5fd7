// 文件: pkg/valuation/snowflake.go
// 估值ID: 雪花算法 (github.com/bwmarrin/snowflake)

package valuation

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node     *snowflake.Node
	nodeErr  error
	initOnce sync.Once
)

// InitSnowflake 初始化节点，nodeID 取值 0-1023，只有第一次调用生效
func InitSnowflake(nodeID int64) error {
	initOnce.Do(func() {
		node, nodeErr = snowflake.NewNode(nodeID)
	})
	return nodeErr
}

// GenerateValuationID 生成估值ID，未初始化时使用节点 0
func GenerateValuationID() int64 {
	if err := InitSnowflake(0); err != nil {
		panic(err)
	}
	return node.Generate().Int64()
}
