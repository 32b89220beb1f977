package catalog

// defaultInstruments is the built-in universe: 135 instruments spread across
// growth, dividend, ETF and bond types. Prices and volatilities are loosely
// calibrated so growth names move visibly while bonds barely drift.
var defaultInstruments = []Instrument{
	// Growth
	{Symbol: "AAPL", DisplayName: "Apple Inc.", BasePrice: 182.50, Type: TypeGrowth, BaseVolatility: 0.020},
	{Symbol: "MSFT", DisplayName: "Microsoft Corp.", BasePrice: 415.20, Type: TypeGrowth, BaseVolatility: 0.018},
	{Symbol: "GOOGL", DisplayName: "Alphabet Inc.", BasePrice: 176.80, Type: TypeGrowth, BaseVolatility: 0.020},
	{Symbol: "AMZN", DisplayName: "Amazon.com Inc.", BasePrice: 198.40, Type: TypeGrowth, BaseVolatility: 0.024},
	{Symbol: "NVDA", DisplayName: "NVIDIA Corp.", BasePrice: 132.60, Type: TypeGrowth, BaseVolatility: 0.038},
	{Symbol: "TSLA", DisplayName: "Tesla Inc.", BasePrice: 248.90, Type: TypeGrowth, BaseVolatility: 0.045},
	{Symbol: "META", DisplayName: "Meta Platforms Inc.", BasePrice: 512.30, Type: TypeGrowth, BaseVolatility: 0.028},
	{Symbol: "NFLX", DisplayName: "Netflix Inc.", BasePrice: 688.10, Type: TypeGrowth, BaseVolatility: 0.030},
	{Symbol: "AMD", DisplayName: "Advanced Micro Devices", BasePrice: 158.70, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "INTC", DisplayName: "Intel Corp.", BasePrice: 30.80, Type: TypeGrowth, BaseVolatility: 0.026},
	{Symbol: "CRM", DisplayName: "Salesforce Inc.", BasePrice: 272.40, Type: TypeGrowth, BaseVolatility: 0.024},
	{Symbol: "ORCL", DisplayName: "Oracle Corp.", BasePrice: 139.60, Type: TypeGrowth, BaseVolatility: 0.019},
	{Symbol: "ADBE", DisplayName: "Adobe Inc.", BasePrice: 528.90, Type: TypeGrowth, BaseVolatility: 0.025},
	{Symbol: "PYPL", DisplayName: "PayPal Holdings", BasePrice: 64.30, Type: TypeGrowth, BaseVolatility: 0.030},
	{Symbol: "SHOP", DisplayName: "Shopify Inc.", BasePrice: 72.80, Type: TypeGrowth, BaseVolatility: 0.040},
	{Symbol: "SQ", DisplayName: "Block Inc.", BasePrice: 68.50, Type: TypeGrowth, BaseVolatility: 0.042},
	{Symbol: "UBER", DisplayName: "Uber Technologies", BasePrice: 71.90, Type: TypeGrowth, BaseVolatility: 0.032},
	{Symbol: "LYFT", DisplayName: "Lyft Inc.", BasePrice: 12.40, Type: TypeGrowth, BaseVolatility: 0.048},
	{Symbol: "SNAP", DisplayName: "Snap Inc.", BasePrice: 11.20, Type: TypeGrowth, BaseVolatility: 0.050},
	{Symbol: "SPOT", DisplayName: "Spotify Technology", BasePrice: 318.60, Type: TypeGrowth, BaseVolatility: 0.032},
	{Symbol: "ZM", DisplayName: "Zoom Video Communications", BasePrice: 62.10, Type: TypeGrowth, BaseVolatility: 0.034},
	{Symbol: "DOCU", DisplayName: "DocuSign Inc.", BasePrice: 54.70, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "TWLO", DisplayName: "Twilio Inc.", BasePrice: 58.20, Type: TypeGrowth, BaseVolatility: 0.040},
	{Symbol: "SNOW", DisplayName: "Snowflake Inc.", BasePrice: 128.90, Type: TypeGrowth, BaseVolatility: 0.042},
	{Symbol: "PLTR", DisplayName: "Palantir Technologies", BasePrice: 28.40, Type: TypeGrowth, BaseVolatility: 0.046},
	{Symbol: "RBLX", DisplayName: "Roblox Corp.", BasePrice: 38.70, Type: TypeGrowth, BaseVolatility: 0.044},
	{Symbol: "COIN", DisplayName: "Coinbase Global", BasePrice: 214.50, Type: TypeGrowth, BaseVolatility: 0.050},
	{Symbol: "ABNB", DisplayName: "Airbnb Inc.", BasePrice: 142.30, Type: TypeGrowth, BaseVolatility: 0.030},
	{Symbol: "DASH", DisplayName: "DoorDash Inc.", BasePrice: 118.60, Type: TypeGrowth, BaseVolatility: 0.034},
	{Symbol: "CRWD", DisplayName: "CrowdStrike Holdings", BasePrice: 304.20, Type: TypeGrowth, BaseVolatility: 0.035},
	{Symbol: "NET", DisplayName: "Cloudflare Inc.", BasePrice: 78.40, Type: TypeGrowth, BaseVolatility: 0.038},
	{Symbol: "DDOG", DisplayName: "Datadog Inc.", BasePrice: 112.80, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "MDB", DisplayName: "MongoDB Inc.", BasePrice: 242.60, Type: TypeGrowth, BaseVolatility: 0.040},
	{Symbol: "OKTA", DisplayName: "Okta Inc.", BasePrice: 92.50, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "ZS", DisplayName: "Zscaler Inc.", BasePrice: 178.30, Type: TypeGrowth, BaseVolatility: 0.038},
	{Symbol: "PANW", DisplayName: "Palo Alto Networks", BasePrice: 312.70, Type: TypeGrowth, BaseVolatility: 0.028},
	{Symbol: "NOW", DisplayName: "ServiceNow Inc.", BasePrice: 742.10, Type: TypeGrowth, BaseVolatility: 0.026},
	{Symbol: "TEAM", DisplayName: "Atlassian Corp.", BasePrice: 168.40, Type: TypeGrowth, BaseVolatility: 0.034},
	{Symbol: "WDAY", DisplayName: "Workday Inc.", BasePrice: 228.90, Type: TypeGrowth, BaseVolatility: 0.026},
	{Symbol: "VEEV", DisplayName: "Veeva Systems", BasePrice: 192.60, Type: TypeGrowth, BaseVolatility: 0.024},
	{Symbol: "HUBS", DisplayName: "HubSpot Inc.", BasePrice: 488.20, Type: TypeGrowth, BaseVolatility: 0.032},
	{Symbol: "TTD", DisplayName: "The Trade Desk", BasePrice: 96.80, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "ROKU", DisplayName: "Roku Inc.", BasePrice: 58.90, Type: TypeGrowth, BaseVolatility: 0.046},
	{Symbol: "PINS", DisplayName: "Pinterest Inc.", BasePrice: 31.60, Type: TypeGrowth, BaseVolatility: 0.038},
	{Symbol: "ETSY", DisplayName: "Etsy Inc.", BasePrice: 56.40, Type: TypeGrowth, BaseVolatility: 0.040},
	{Symbol: "CHWY", DisplayName: "Chewy Inc.", BasePrice: 26.80, Type: TypeGrowth, BaseVolatility: 0.042},
	{Symbol: "CVNA", DisplayName: "Carvana Co.", BasePrice: 138.20, Type: TypeGrowth, BaseVolatility: 0.050},
	{Symbol: "AFRM", DisplayName: "Affirm Holdings", BasePrice: 34.90, Type: TypeGrowth, BaseVolatility: 0.048},
	{Symbol: "HOOD", DisplayName: "Robinhood Markets", BasePrice: 21.30, Type: TypeGrowth, BaseVolatility: 0.046},
	{Symbol: "SOFI", DisplayName: "SoFi Technologies", BasePrice: 7.80, Type: TypeGrowth, BaseVolatility: 0.044},
	{Symbol: "UPST", DisplayName: "Upstart Holdings", BasePrice: 38.50, Type: TypeGrowth, BaseVolatility: 0.050},
	{Symbol: "PATH", DisplayName: "UiPath Inc.", BasePrice: 13.60, Type: TypeGrowth, BaseVolatility: 0.040},
	{Symbol: "SMCI", DisplayName: "Super Micro Computer", BasePrice: 46.20, Type: TypeGrowth, BaseVolatility: 0.050},
	{Symbol: "ARM", DisplayName: "Arm Holdings", BasePrice: 128.70, Type: TypeGrowth, BaseVolatility: 0.042},
	{Symbol: "MRVL", DisplayName: "Marvell Technology", BasePrice: 72.40, Type: TypeGrowth, BaseVolatility: 0.034},
	{Symbol: "AVGO", DisplayName: "Broadcom Inc.", BasePrice: 168.90, Type: TypeGrowth, BaseVolatility: 0.028},
	{Symbol: "QCOM", DisplayName: "Qualcomm Inc.", BasePrice: 168.20, Type: TypeGrowth, BaseVolatility: 0.026},
	{Symbol: "MU", DisplayName: "Micron Technology", BasePrice: 94.60, Type: TypeGrowth, BaseVolatility: 0.036},
	{Symbol: "LRCX", DisplayName: "Lam Research", BasePrice: 78.30, Type: TypeGrowth, BaseVolatility: 0.030},
	{Symbol: "AMAT", DisplayName: "Applied Materials", BasePrice: 186.50, Type: TypeGrowth, BaseVolatility: 0.028},
	// Dividend
	{Symbol: "JNJ", DisplayName: "Johnson & Johnson", BasePrice: 158.20, Type: TypeDividend, BaseVolatility: 0.010},
	{Symbol: "PG", DisplayName: "Procter & Gamble", BasePrice: 168.70, Type: TypeDividend, BaseVolatility: 0.009},
	{Symbol: "KO", DisplayName: "Coca-Cola Co.", BasePrice: 62.40, Type: TypeDividend, BaseVolatility: 0.009},
	{Symbol: "PEP", DisplayName: "PepsiCo Inc.", BasePrice: 172.60, Type: TypeDividend, BaseVolatility: 0.010},
	{Symbol: "WMT", DisplayName: "Walmart Inc.", BasePrice: 68.90, Type: TypeDividend, BaseVolatility: 0.011},
	{Symbol: "MCD", DisplayName: "McDonald's Corp.", BasePrice: 258.30, Type: TypeDividend, BaseVolatility: 0.010},
	{Symbol: "HD", DisplayName: "Home Depot Inc.", BasePrice: 342.80, Type: TypeDividend, BaseVolatility: 0.013},
	{Symbol: "VZ", DisplayName: "Verizon Communications", BasePrice: 40.20, Type: TypeDividend, BaseVolatility: 0.010},
	{Symbol: "T", DisplayName: "AT&T Inc.", BasePrice: 19.60, Type: TypeDividend, BaseVolatility: 0.011},
	{Symbol: "IBM", DisplayName: "IBM Corp.", BasePrice: 186.40, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "CSCO", DisplayName: "Cisco Systems", BasePrice: 48.70, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "XOM", DisplayName: "Exxon Mobil Corp.", BasePrice: 114.30, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "CVX", DisplayName: "Chevron Corp.", BasePrice: 152.80, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "JPM", DisplayName: "JPMorgan Chase", BasePrice: 208.60, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "BAC", DisplayName: "Bank of America", BasePrice: 39.80, Type: TypeDividend, BaseVolatility: 0.015},
	{Symbol: "WFC", DisplayName: "Wells Fargo & Co.", BasePrice: 58.40, Type: TypeDividend, BaseVolatility: 0.015},
	{Symbol: "GS", DisplayName: "Goldman Sachs Group", BasePrice: 468.20, Type: TypeDividend, BaseVolatility: 0.016},
	{Symbol: "MS", DisplayName: "Morgan Stanley", BasePrice: 98.70, Type: TypeDividend, BaseVolatility: 0.015},
	{Symbol: "C", DisplayName: "Citigroup Inc.", BasePrice: 62.90, Type: TypeDividend, BaseVolatility: 0.016},
	{Symbol: "AXP", DisplayName: "American Express", BasePrice: 238.50, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "V", DisplayName: "Visa Inc.", BasePrice: 272.30, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "MA", DisplayName: "Mastercard Inc.", BasePrice: 448.60, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "UNH", DisplayName: "UnitedHealth Group", BasePrice: 512.40, Type: TypeDividend, BaseVolatility: 0.013},
	{Symbol: "PFE", DisplayName: "Pfizer Inc.", BasePrice: 28.30, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "MRK", DisplayName: "Merck & Co.", BasePrice: 126.80, Type: TypeDividend, BaseVolatility: 0.011},
	{Symbol: "ABBV", DisplayName: "AbbVie Inc.", BasePrice: 168.40, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "LLY", DisplayName: "Eli Lilly & Co.", BasePrice: 812.60, Type: TypeDividend, BaseVolatility: 0.016},
	{Symbol: "AMGN", DisplayName: "Amgen Inc.", BasePrice: 312.70, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "MMM", DisplayName: "3M Co.", BasePrice: 102.50, Type: TypeDividend, BaseVolatility: 0.013},
	{Symbol: "CAT", DisplayName: "Caterpillar Inc.", BasePrice: 348.90, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "DIS", DisplayName: "Walt Disney Co.", BasePrice: 92.60, Type: TypeDividend, BaseVolatility: 0.016},
	{Symbol: "NKE", DisplayName: "Nike Inc.", BasePrice: 76.80, Type: TypeDividend, BaseVolatility: 0.016},
	{Symbol: "SBUX", DisplayName: "Starbucks Corp.", BasePrice: 94.20, Type: TypeDividend, BaseVolatility: 0.014},
	{Symbol: "COST", DisplayName: "Costco Wholesale", BasePrice: 872.30, Type: TypeDividend, BaseVolatility: 0.012},
	{Symbol: "O", DisplayName: "Realty Income Corp.", BasePrice: 56.80, Type: TypeDividend, BaseVolatility: 0.010},
	// ETFs
	{Symbol: "SPY", DisplayName: "S&P 500 Index Fund", BasePrice: 548.20, Type: TypeETF, BaseVolatility: 0.010},
	{Symbol: "QQQ", DisplayName: "Nasdaq 100 Index Fund", BasePrice: 478.60, Type: TypeETF, BaseVolatility: 0.013},
	{Symbol: "DIA", DisplayName: "Dow Jones Index Fund", BasePrice: 402.30, Type: TypeETF, BaseVolatility: 0.009},
	{Symbol: "IWM", DisplayName: "Russell 2000 Index Fund", BasePrice: 218.40, Type: TypeETF, BaseVolatility: 0.014},
	{Symbol: "VTI", DisplayName: "Total Stock Market Fund", BasePrice: 268.90, Type: TypeETF, BaseVolatility: 0.010},
	{Symbol: "VOO", DisplayName: "S&P 500 Vanguard Fund", BasePrice: 502.70, Type: TypeETF, BaseVolatility: 0.010},
	{Symbol: "VEA", DisplayName: "Developed Markets Fund", BasePrice: 49.80, Type: TypeETF, BaseVolatility: 0.009},
	{Symbol: "VWO", DisplayName: "Emerging Markets Fund", BasePrice: 44.60, Type: TypeETF, BaseVolatility: 0.012},
	{Symbol: "EFA", DisplayName: "EAFE Index Fund", BasePrice: 78.90, Type: TypeETF, BaseVolatility: 0.009},
	{Symbol: "EEM", DisplayName: "Emerging Markets Index", BasePrice: 42.80, Type: TypeETF, BaseVolatility: 0.012},
	{Symbol: "XLK", DisplayName: "Technology Sector Fund", BasePrice: 218.60, Type: TypeETF, BaseVolatility: 0.014},
	{Symbol: "XLF", DisplayName: "Financial Sector Fund", BasePrice: 42.30, Type: TypeETF, BaseVolatility: 0.011},
	{Symbol: "XLE", DisplayName: "Energy Sector Fund", BasePrice: 88.70, Type: TypeETF, BaseVolatility: 0.015},
	{Symbol: "XLV", DisplayName: "Health Care Sector Fund", BasePrice: 146.20, Type: TypeETF, BaseVolatility: 0.009},
	{Symbol: "XLI", DisplayName: "Industrial Sector Fund", BasePrice: 128.40, Type: TypeETF, BaseVolatility: 0.010},
	{Symbol: "XLP", DisplayName: "Consumer Staples Fund", BasePrice: 78.60, Type: TypeETF, BaseVolatility: 0.008},
	{Symbol: "XLY", DisplayName: "Consumer Discretionary", BasePrice: 182.90, Type: TypeETF, BaseVolatility: 0.012},
	{Symbol: "XLU", DisplayName: "Utilities Sector Fund", BasePrice: 72.40, Type: TypeETF, BaseVolatility: 0.008},
	{Symbol: "XLB", DisplayName: "Materials Sector Fund", BasePrice: 92.80, Type: TypeETF, BaseVolatility: 0.011},
	{Symbol: "XLRE", DisplayName: "Real Estate Sector Fund", BasePrice: 41.20, Type: TypeETF, BaseVolatility: 0.010},
	{Symbol: "ARKK", DisplayName: "Disruptive Innovation Fund", BasePrice: 46.80, Type: TypeETF, BaseVolatility: 0.025},
	{Symbol: "GLD", DisplayName: "Gold Trust", BasePrice: 218.30, Type: TypeETF, BaseVolatility: 0.009},
	{Symbol: "SLV", DisplayName: "Silver Trust", BasePrice: 26.40, Type: TypeETF, BaseVolatility: 0.016},
	{Symbol: "VNQ", DisplayName: "Real Estate Index Fund", BasePrice: 88.20, Type: TypeETF, BaseVolatility: 0.011},
	{Symbol: "USO", DisplayName: "Oil Fund", BasePrice: 74.60, Type: TypeETF, BaseVolatility: 0.020},
	// Bonds
	{Symbol: "TLT", DisplayName: "20+ Year Treasury Fund", BasePrice: 92.60, Type: TypeBond, BaseVolatility: 0.006},
	{Symbol: "IEF", DisplayName: "7-10 Year Treasury Fund", BasePrice: 94.80, Type: TypeBond, BaseVolatility: 0.005},
	{Symbol: "SHY", DisplayName: "1-3 Year Treasury Fund", BasePrice: 82.30, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "BND", DisplayName: "Total Bond Market Fund", BasePrice: 72.40, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "AGG", DisplayName: "Aggregate Bond Fund", BasePrice: 98.10, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "LQD", DisplayName: "Investment Grade Corporate", BasePrice: 108.70, Type: TypeBond, BaseVolatility: 0.005},
	{Symbol: "HYG", DisplayName: "High Yield Corporate Fund", BasePrice: 78.90, Type: TypeBond, BaseVolatility: 0.006},
	{Symbol: "JNK", DisplayName: "High Yield Bond Fund", BasePrice: 96.20, Type: TypeBond, BaseVolatility: 0.006},
	{Symbol: "TIP", DisplayName: "Inflation Protected Fund", BasePrice: 106.80, Type: TypeBond, BaseVolatility: 0.005},
	{Symbol: "MUB", DisplayName: "Municipal Bond Fund", BasePrice: 104.30, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "VCIT", DisplayName: "Intermediate Corporate Fund", BasePrice: 79.60, Type: TypeBond, BaseVolatility: 0.005},
	{Symbol: "VCSH", DisplayName: "Short-Term Corporate Fund", BasePrice: 77.80, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "GOVT", DisplayName: "US Treasury Bond Fund", BasePrice: 22.90, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "BIL", DisplayName: "1-3 Month T-Bill Fund", BasePrice: 91.50, Type: TypeBond, BaseVolatility: 0.004},
	{Symbol: "EMB", DisplayName: "Emerging Markets Bond Fund", BasePrice: 89.40, Type: TypeBond, BaseVolatility: 0.006},
}
