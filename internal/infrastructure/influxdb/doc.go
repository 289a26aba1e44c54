// Package influxdb records resolved binding values in InfluxDB.
//
// Every runtime composition resolves one value per widget binding. When
// history is enabled those values are written here as points of the
// binding_values measurement, tagged by screen, widget, binding and source,
// so trends can be charted later without touching the project store.
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteBindingValues(values)
//
// # Error Handling
//
// Writes are non-blocking and batched (batch_size, flush_interval). Batch
// errors arrive through the SetOnError callback. Connection and health
// check errors are returned directly.
package influxdb
