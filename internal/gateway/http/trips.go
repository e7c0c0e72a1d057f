package http

import (
	"net/http"

	"github.com/roamlabs/tripgate/internal/gateway/domain"
	"github.com/roamlabs/tripgate/internal/gateway/service"
	"github.com/roamlabs/tripgate/pkg/gatesdk"
	"github.com/roamlabs/tripgate/pkg/httpx"
)

// TripHandler serves the authenticated trip resource routes. All of them
// accept an optional `zipcode` query parameter; without it the caller's
// address is geolocated.
type TripHandler struct {
	TripService *service.TripService
}

// resolveInput extracts everything location resolution needs from a request.
func resolveInput(r *http.Request) service.ResolveInput {
	return service.ResolveInput{
		Zip:          r.URL.Query().Get("zipcode"),
		ForwardedFor: r.Header.Get("X-Forwarded-For"),
		RemoteAddr:   r.RemoteAddr,
	}
}

func toWeather(rec domain.WeatherRecord) gatesdk.Weather {
	return gatesdk.Weather{
		City:        rec.City,
		Date:        rec.Date,
		Temperature: rec.Temperature,
		Description: rec.Description,
	}
}

// LocationByIP godoc
//
//	@Summary		Location By IP Endpoint
//	@Description	Geolocates the caller's network address and returns the derived
//	@Description	location. Any zipcode query parameter is ignored.
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	gatesdk.Location
//	@Failure		404	{object}	map[string]string	"no location"
//	@Router			/locationByIp [get].
func (h *TripHandler) LocationByIP(w http.ResponseWriter, r *http.Request) {
	loc, err := h.TripService.LocationByIP(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.Location{
		ZipCode: loc.Zip,
		City:    loc.City,
		Country: loc.Country,
		Source:  string(loc.Source),
	})
}

// Weather godoc
//
//	@Summary		Current Weather Endpoint
//	@Description	Current conditions for the resolved location
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			zipcode	query		string	false	"Explicit zip code"
//	@Success		200		{object}	gatesdk.Weather
//	@Failure		404		{object}	map[string]string	"no location / no information"
//	@Router			/weather [get].
func (h *TripHandler) Weather(w http.ResponseWriter, r *http.Request) {
	rec, err := h.TripService.CurrentWeather(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toWeather(rec))
}

// FiveDay godoc
//
//	@Summary		Five Day Forecast Endpoint
//	@Description	Upcoming forecast entries for the resolved location
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			zipcode	query		string	false	"Explicit zip code"
//	@Success		200		{array}		gatesdk.Weather
//	@Failure		404		{object}	map[string]string	"no location / no information"
//	@Router			/fiveday [get].
func (h *TripHandler) FiveDay(w http.ResponseWriter, r *http.Request) {
	recs, err := h.TripService.FiveDayForecast(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]gatesdk.Weather, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toWeather(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Restaurants godoc
//
//	@Summary		Restaurant Search Endpoint
//	@Description	Dining options near the resolved location
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			zipcode	query		string	false	"Explicit zip code"
//	@Success		200		{array}		gatesdk.Restaurant
//	@Failure		404		{object}	map[string]string	"no location / no information"
//	@Router			/restaurants [get].
func (h *TripHandler) Restaurants(w http.ResponseWriter, r *http.Request) {
	recs, err := h.TripService.Restaurants(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]gatesdk.Restaurant, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gatesdk.Restaurant{
			Name:       rec.Name,
			Address:    rec.Address,
			Phone:      rec.Phone,
			Cuisine:    rec.Cuisine,
			PriceScale: rec.PriceScale,
			Rating:     rec.Rating,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Events godoc
//
//	@Summary		Event Search Endpoint
//	@Description	Upcoming events near the resolved location
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			zipcode	query		string	false	"Explicit zip code"
//	@Success		200		{array}		gatesdk.Event
//	@Failure		404		{object}	map[string]string	"no location / no information"
//	@Router			/events [get].
func (h *TripHandler) Events(w http.ResponseWriter, r *http.Request) {
	recs, err := h.TripService.LocalEvents(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]gatesdk.Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gatesdk.Event{
			Name:     rec.Name,
			Date:     rec.Date,
			Segment:  rec.Segment,
			Genre:    rec.Genre,
			SubGenre: rec.SubGenre,
			Venue:    rec.Venue,
			Address:  rec.Address,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Hotels godoc
//
//	@Summary		Hotel Search Endpoint
//	@Description	Lodging near the resolved location; each entry's xid keys the detail lookup
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			zipcode	query		string	false	"Explicit zip code"
//	@Success		200		{array}		gatesdk.Hotel
//	@Failure		404		{object}	map[string]string	"no location / no information"
//	@Router			/hotels [get].
func (h *TripHandler) Hotels(w http.ResponseWriter, r *http.Request) {
	recs, err := h.TripService.Hotels(r.Context(), resolveInput(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]gatesdk.Hotel, 0, len(recs))
	for _, rec := range recs {
		out = append(out, gatesdk.Hotel{
			Name:   rec.Name,
			Rating: rec.Rating,
			XID:    rec.XID,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Hotel godoc
//
//	@Summary		Hotel Detail Endpoint
//	@Description	Address detail for one lodging entry by xid
//	@Tags			Trips
//	@Produce		json
//	@Security		BearerAuth
//	@Param			xid	query		string	true	"Lodging entry identifier"
//	@Success	200	{object}	gatesdk.HotelDetail
//	@Failure	400	{object}	map[string]string	"error"
//	@Failure	404	{object}	map[string]string	"no information"
//	@Router		/hotel [get].
func (h *TripHandler) Hotel(w http.ResponseWriter, r *http.Request) {
	xid := r.URL.Query().Get("xid")
	if xid == "" {
		gatesdk.ErrInvalidRequest.WriteError(w)
		return
	}

	detail, err := h.TripService.HotelDetail(r.Context(), xid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.HotelDetail{
		HouseNumber: detail.HouseNumber,
		Street:      detail.Street,
		City:        detail.City,
	})
}
