package tago

import (
	"context"
	"net/http"
)

// DeviceAPI writes value records into a device's bucket.
type DeviceAPI interface {
	SendData(ctx context.Context, data ...*Data) error
}

// Device is a device API client bound to a device token.
type Device struct {
	token string
	base  string
	http  *httpStack
}

// NewDevice returns a device client.
func NewDevice(cfg Config, token string, client *http.Client) *Device {
	return &Device{
		token: token,
		base:  cfg.APIURL,
		http:  newHTTPStack(client, cfg.HTTPTimeout),
	}
}

// SendData appends records to the device.
func (d *Device) SendData(ctx context.Context, data ...*Data) error {
	if len(data) == 0 {
		return nil
	}
	request, err := d.http.newRequest(ctx, "POST", APIURL(d.base, "/data"), d.token, data)
	if err != nil {
		return err
	}
	return d.http.do(request, nil)
}
