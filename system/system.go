package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leftmike/setsession/property"
	"github.com/leftmike/setsession/sql"
)

const (
	QueryMaxRunTime        = "query_max_run_time"
	QueryPriority          = "query_priority"
	JoinDistributionType   = "join_distribution_type"
	HashPartitionCount     = "hash_partition_count"
	OptimizeHashGeneration = "optimize_hash_generation"
	TaskConcurrency        = "task_concurrency"
	PushdownWhere          = "pushdown_where"
)

func properties() []*property.Metadata {
	return []*property.Metadata{
		{
			Name:        QueryMaxRunTime,
			Description: "Maximum run time of a query",
			Type:        property.VarcharType,
			Default:     sql.StringValue("100d"),
			Validator:   validateDuration,
		},
		{
			Name:        QueryPriority,
			Description: "The priority of queries; larger numbers are higher priority",
			Type:        property.IntegerType,
			Default:     sql.Int64Value(1),
			Validator:   property.Range(sql.Int64Value(1), nil, "query_priority must be positive"),
		},
		{
			Name:        JoinDistributionType,
			Description: "The join method to use",
			Type:        property.EnumType("AUTOMATIC", "BROADCAST", "PARTITIONED"),
			Default:     sql.StringValue("AUTOMATIC"),
		},
		{
			Name:        HashPartitionCount,
			Description: "Number of partitions for distributed joins and aggregations",
			Type:        property.IntegerType,
			Default:     sql.Int64Value(100),
			Validator:   property.Range(sql.Int64Value(1), nil, ""),
		},
		{
			Name:        OptimizeHashGeneration,
			Description: "Compute hash codes for distribution, joins, and aggregations early",
			Type:        property.BooleanType,
			Default:     sql.BoolValue(true),
		},
		{
			Name:        TaskConcurrency,
			Description: "Default number of local parallel jobs per worker",
			Type:        property.IntegerType,
			Default:     sql.Int64Value(16),
			Validator:   validatePowerOfTwo,
		},
		{
			Name:        PushdownWhere,
			Description: "Push WHERE filters down to the storage layer",
			Type:        property.BooleanType,
			Default:     sql.BoolValue(true),
			Hidden:      true,
		},
	}
}

// Register adds the system session properties to reg.
func Register(reg *property.Registry) error {
	for _, md := range properties() {
		err := reg.AddSystemProperty(md)
		if err != nil {
			return fmt.Errorf("system: %s", err)
		}
	}
	return nil
}

// NewRegistry returns a registry containing only the system session properties.
func NewRegistry() *property.Registry {
	reg := property.NewRegistry()
	err := Register(reg)
	if err != nil {
		panic(err)
	}
	return reg
}

var durationUnits = []string{"ns", "us", "ms", "s", "m", "h", "d"}

func validateDuration(v sql.Value) error {
	s := strings.TrimSpace(string(v.(sql.StringValue)))
	for _, unit := range durationUnits {
		if !strings.HasSuffix(s, unit) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, unit)), 64)
		if err == nil && n >= 0 {
			return nil
		}
		break
	}
	return fmt.Errorf("duration is not valid: %s", s)
}

func validatePowerOfTwo(v sql.Value) error {
	n := int64(v.(sql.Int64Value))
	if n <= 0 || n&(n-1) != 0 {
		return errors.New("task_concurrency must be a power of 2")
	}
	return nil
}
