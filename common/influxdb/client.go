package influxdb

import (
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/bytearena/hullfilter/common/utils"

	"github.com/influxdata/influxdb/client/v2"
)

type Client struct {
	isStub bool

	batchpointsClient client.BatchPoints
	appName           string
	influxdbClient    client.Client
}

func createHttpClient(addr string) (client.Client, error) {
	return client.NewHTTPClient(client.HTTPConfig{
		Addr: addr,
	})
}

func createBatchPoints(db string) (client.BatchPoints, error) {
	return client.NewBatchPoints(client.BatchPointsConfig{
		Database: db,
	})
}

// NewClient reports to INFLUXDB_ADDR / INFLUXDB_DB. Without them, metrics
// are only written as debug lines.
func NewClient(appName string) (*Client, error) {
	influxdbAddr := os.Getenv("INFLUXDB_ADDR")
	influxdbDb := os.Getenv("INFLUXDB_DB")

	stubClient := &Client{
		isStub:  true,
		appName: appName,
	}

	if influxdbAddr == "" && influxdbDb == "" {
		utils.Debug("influxdb", "No client has been configured")
		return stubClient, nil
	}

	influxdbClient, clientErr := createHttpClient(influxdbAddr)

	if clientErr != nil {
		return stubClient, clientErr
	}

	batchpointsClient, batchpointsErr := createBatchPoints(influxdbDb)

	if batchpointsErr != nil {
		return stubClient, batchpointsErr
	}

	utils.Debug("influxdb", "Influxdb reporting is enabled")

	return &Client{
		isStub: false,

		influxdbClient:    influxdbClient,
		batchpointsClient: batchpointsClient,
		appName:           appName,
	}, nil
}

func (c *Client) IsStub() bool {
	return c.isStub
}

func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	str := ""
	for _, k := range keys {
		var value string
		switch v := fields[k].(type) {
		case int:
			value = strconv.Itoa(v)
		case float64:
			value = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			value = v
		default:
			continue
		}

		if str != "" {
			str += " "
		}
		str += k + "=" + value
	}

	return str
}

func (c *Client) WriteAppMetric(name string, tags map[string]string, fields map[string]interface{}) error {
	if c.isStub {
		utils.DebugWithContext("influxdb-debug", name+" "+formatFields(fields), utils.Context{"tags": tags})
		return nil
	}

	allTags := map[string]string{"app": c.appName}
	for k, v := range tags {
		allTags[k] = v
	}

	pt, err := client.NewPoint(name, allTags, fields, time.Now())

	if err != nil {
		return err
	}

	c.batchpointsClient.AddPoint(pt)
	return c.influxdbClient.Write(c.batchpointsClient)
}

func (c *Client) TearDown() {
	if !c.isStub {
		c.influxdbClient.Close()
	}
}
