package risk

// DelhiHotspots returns the built-in hotspot table for the Delhi NCR region,
// compiled from Delhi Police crime statistics and news reports. It is the
// default backing set when no repository is configured.
func DelhiHotspots() []Hotspot {
	return []Hotspot{
		// High incident areas
		{Area: "Ghaziabad Border", Lat: 28.6692, Lon: 77.4538, IncidentCount: 85},
		{Area: "Noida Sector 18", Lat: 28.5355, Lon: 77.3910, IncidentCount: 78},
		{Area: "Dwarka", Lat: 28.4595, Lon: 77.0266, IncidentCount: 72},
		{Area: "Kashmere Gate", Lat: 28.6517, Lon: 77.2219, IncidentCount: 68},
		{Area: "Old Delhi", Lat: 28.6519, Lon: 77.2315, IncidentCount: 65},
		{Area: "Saket", Lat: 28.5494, Lon: 77.2001, IncidentCount: 62},

		// Moderate incident areas
		{Area: "Connaught Place", Lat: 28.6139, Lon: 77.2090, IncidentCount: 45},
		{Area: "Nehru Place", Lat: 28.5244, Lon: 77.1855, IncidentCount: 48},
		{Area: "Rohini", Lat: 28.7041, Lon: 77.1025, IncidentCount: 42},
		{Area: "Pitampura", Lat: 28.6692, Lon: 77.1100, IncidentCount: 40},
		{Area: "Greater Kailash", Lat: 28.5245, Lon: 77.2066, IncidentCount: 43},
		{Area: "Barakhamba Road", Lat: 28.6304, Lon: 77.2177, IncidentCount: 41},

		// Lower incident areas
		{Area: "Janakpuri", Lat: 28.5921, Lon: 77.0460, IncidentCount: 25},
		{Area: "Mandi House", Lat: 28.6358, Lon: 77.2245, IncidentCount: 28},
		{Area: "Rajpath", Lat: 28.6280, Lon: 77.2207, IncidentCount: 22},
		{Area: "Civil Lines", Lat: 28.6562, Lon: 77.2410, IncidentCount: 24},
		{Area: "Lajpat Nagar", Lat: 28.5672, Lon: 77.2100, IncidentCount: 20},
		{Area: "Mayur Vihar", Lat: 28.5707, Lon: 77.3206, IncidentCount: 26},
		{Area: "Shahdara", Lat: 28.6562, Lon: 77.2733, IncidentCount: 23},
		{Area: "Preet Vihar", Lat: 28.6280, Lon: 77.3648, IncidentCount: 27},
	}
}
