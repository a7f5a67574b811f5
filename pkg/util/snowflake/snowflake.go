package snowflake

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

var (
	node     *snowflake.Node
	nodeOnce sync.Once
	// machine id used when Init was never called or given a bad value
	defaultMachineID int64 = 1
)

// Init creates the snowflake node. Call once at startup with the configured
// machine id (0-1023, unique per deployed instance).
func Init(machineID int64) {
	nodeOnce.Do(func() {
		if machineID < 0 || machineID > 1023 {
			machineID = defaultMachineID
			zap.L().Warn("invalid snowflake machine id in config, using default", zap.Int64("machineID", machineID))
		}
		var err error
		node, err = snowflake.NewNode(machineID)
		if err != nil {
			zap.L().Fatal("failed to initialize snowflake node", zap.Error(err))
		}
	})
}

// GenerateID returns a new int64 id.
func GenerateID() int64 {
	if node == nil {
		Init(defaultMachineID)
	}
	return node.Generate().Int64()
}

// GenerateIDString returns a new id as a string, for JSON payloads where
// JavaScript would lose int64 precision.
func GenerateIDString() string {
	if node == nil {
		Init(defaultMachineID)
	}
	return node.Generate().String()
}
